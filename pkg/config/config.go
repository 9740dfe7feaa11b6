package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Transcription failure policies
const (
	PolicySkipSegment = "skip"
	PolicyAbortRun    = "abort"
)

// Config holds application configuration
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Storage      StorageConfig
	Assembly     AssemblyAIConfig
	Groq         GroqConfig
	YouTube      YouTubeConfig
	SponsorBlock SponsorBlockConfig
	Media        MediaConfig
	Analysis     AnalysisConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	APIKey          string   `envconfig:"API_KEY"`
}

// DatabaseConfig holds database configuration. The analysis history is
// optional; with Enabled=false runs are not persisted.
type DatabaseConfig struct {
	Enabled       bool   `envconfig:"DB_ENABLED" default:"false"`
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          string `envconfig:"DB_PORT" default:"5432"`
	User          string `envconfig:"DB_USER" default:"postgres"`
	Password      string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name          string `envconfig:"DB_NAME" default:"sponsor_digest"`
	SSLMode       string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns      int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns      int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate   bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	MigrationsDir string `envconfig:"DB_MIGRATIONS_DIR" default:"migrations"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StorageConfig holds storage configuration for archived sponsorship clips
type StorageConfig struct {
	Enabled         bool   `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"sponsor-digest"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string `envconfig:"STORAGE_PUBLIC_URL"`
}

// AssemblyAIConfig holds transcription service configuration
type AssemblyAIConfig struct {
	APIKey       string        `envconfig:"ASSEMBLYAI_API_KEY"`
	BaseURL      string        `envconfig:"ASSEMBLYAI_BASE_URL"`
	LanguageCode string        `envconfig:"ASSEMBLYAI_LANGUAGE_CODE"`
	Timeout      time.Duration `envconfig:"ASSEMBLYAI_TIMEOUT" default:"30s"`
	PollInterval time.Duration `envconfig:"ASSEMBLYAI_POLL_INTERVAL" default:"3s"`
}

// GroqConfig holds summarization model configuration
type GroqConfig struct {
	APIKey      string        `envconfig:"GROQ_API_KEY"`
	BaseURL     string        `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	Model       string        `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	Temperature float64       `envconfig:"GROQ_TEMPERATURE" default:"0.3"`
	MaxTokens   int           `envconfig:"GROQ_MAX_TOKENS" default:"1024"`
	Timeout     time.Duration `envconfig:"GROQ_TIMEOUT" default:"60s"`
}

// YouTubeConfig holds YouTube Data API configuration
type YouTubeConfig struct {
	APIKey  string `envconfig:"YOUTUBE_API_KEY"`
	BaseURL string `envconfig:"YOUTUBE_API_URL"`
}

// SponsorBlockConfig holds segment source configuration
type SponsorBlockConfig struct {
	BaseURL    string        `envconfig:"SPONSORBLOCK_API_URL" default:"https://sponsor.ajay.app"`
	Categories []string      `envconfig:"SPONSORBLOCK_CATEGORIES" default:"sponsor"`
	Timeout    time.Duration `envconfig:"SPONSORBLOCK_TIMEOUT" default:"15s"`
}

// MediaConfig holds paths to the external media tools
type MediaConfig struct {
	YtDlpPath   string `envconfig:"YTDLP_PATH" default:"yt-dlp"`
	FFmpegPath  string `envconfig:"FFMPEG_PATH" default:"ffmpeg"`
	CookiesFile string `envconfig:"YTDLP_COOKIES_FILE"`
	SampleRate  int    `envconfig:"AUDIO_SAMPLE_RATE" default:"16000"`
	Channels    int    `envconfig:"AUDIO_CHANNELS" default:"1"`
}

// AnalysisConfig holds sponsorship pipeline tuning
type AnalysisConfig struct {
	// Tolerance is the maximum start-time gap, in seconds, for two reported
	// segments to count as the same sponsorship.
	Tolerance                  float64       `envconfig:"SEGMENT_TOLERANCE" default:"2.0"`
	TranscriptionFailurePolicy string        `envconfig:"TRANSCRIPTION_FAILURE_POLICY" default:"skip"`
	ChannelConcurrency         int           `envconfig:"CHANNEL_CONCURRENCY" default:"2"`
	DefaultVideoCount          int           `envconfig:"DEFAULT_VIDEO_COUNT" default:"3"`
	ReportTTL                  time.Duration `envconfig:"REPORT_TTL" default:"24h"`
	RunTimeout                 time.Duration `envconfig:"RUN_TIMEOUT" default:"15m"`
	RetryInitialInterval       time.Duration `envconfig:"RETRY_INITIAL_INTERVAL" default:"2s"`
	RetryMaxInterval           time.Duration `envconfig:"RETRY_MAX_INTERVAL" default:"10s"`
	RetryMaxElapsed            time.Duration `envconfig:"RETRY_MAX_ELAPSED" default:"30s"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadDatabase loads configuration for tools that only talk to the database.
// API keys of the analysis services are not required.
func LoadDatabase() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if err := config.ValidateDatabase(); err != nil {
		return nil, err
	}

	return config, nil
}

// FromEnv populates a Config from the process environment without
// validating it.
func FromEnv() (*Config, error) {
	config := &Config{}
	sections := []interface{}{
		&config.Server,
		&config.Database,
		&config.Redis,
		&config.Storage,
		&config.Assembly,
		&config.Groq,
		&config.YouTube,
		&config.SponsorBlock,
		&config.Media,
		&config.Analysis,
	}
	// Every field carries its full variable name, so sections are processed
	// without a prefix.
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Assembly.APIKey == "" {
		return fmt.Errorf("ASSEMBLYAI_API_KEY is required")
	}
	if c.Groq.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("YOUTUBE_API_KEY is required")
	}
	if c.Analysis.Tolerance < 0 {
		return fmt.Errorf("SEGMENT_TOLERANCE must be >= 0, got %v", c.Analysis.Tolerance)
	}
	switch c.Analysis.TranscriptionFailurePolicy {
	case PolicySkipSegment, PolicyAbortRun:
	default:
		return fmt.Errorf("TRANSCRIPTION_FAILURE_POLICY must be %q or %q, got %q",
			PolicySkipSegment, PolicyAbortRun, c.Analysis.TranscriptionFailurePolicy)
	}
	if c.Analysis.ChannelConcurrency < 1 {
		return fmt.Errorf("CHANNEL_CONCURRENCY must be >= 1")
	}
	if c.Analysis.DefaultVideoCount < 1 {
		return fmt.Errorf("DEFAULT_VIDEO_COUNT must be >= 1")
	}
	return nil
}

// ValidateDatabase checks only the database connection settings
func (c *Config) ValidateDatabase() error {
	switch {
	case c.Database.Host == "":
		return fmt.Errorf("DB_HOST is required")
	case c.Database.Port == "":
		return fmt.Errorf("DB_PORT is required")
	case c.Database.User == "":
		return fmt.Errorf("DB_USER is required")
	case c.Database.Name == "":
		return fmt.Errorf("DB_NAME is required")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
