package sponsorship

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/johnquangdev/sponsor-digest/internal/domain/entities"
	domainrepo "github.com/johnquangdev/sponsor-digest/internal/domain/repositories"
	"github.com/johnquangdev/sponsor-digest/pkg/ai"
	"github.com/johnquangdev/sponsor-digest/pkg/config"
	"github.com/johnquangdev/sponsor-digest/pkg/jobcontext"
	"github.com/johnquangdev/sponsor-digest/pkg/media"
	"github.com/johnquangdev/sponsor-digest/pkg/segment"
	"github.com/johnquangdev/sponsor-digest/pkg/sponsorblock"
	"github.com/johnquangdev/sponsor-digest/pkg/youtube"
)

// Service defines sponsorship analysis methods
type Service interface {
	AnalyzeVideo(ctx context.Context, videoURL string) (*entities.VideoReport, error)
	AnalyzeChannel(ctx context.Context, handle string, count int) (*entities.ChannelReport, error)
	GetReport(ctx context.Context, videoID string) (*entities.VideoReport, error)
	DeleteReport(ctx context.Context, videoID string) error
	GetRun(ctx context.Context, runID uuid.UUID) (*entities.AnalysisRun, error)
	ListRuns(ctx context.Context, videoID string, limit int) ([]entities.AnalysisRun, error)
}

// Options tunes the analysis pipeline
type Options struct {
	Tolerance            float64
	FailurePolicy        string
	ChannelConcurrency   int
	ReportTTL            time.Duration
	RunTimeout           time.Duration
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMaxElapsed      time.Duration
}

// OptionsFromConfig reads pipeline options from the analysis config
func OptionsFromConfig(cfg *config.AnalysisConfig) Options {
	return Options{
		Tolerance:            cfg.Tolerance,
		FailurePolicy:        cfg.TranscriptionFailurePolicy,
		ChannelConcurrency:   cfg.ChannelConcurrency,
		ReportTTL:            cfg.ReportTTL,
		RunTimeout:           cfg.RunTimeout,
		RetryInitialInterval: cfg.RetryInitialInterval,
		RetryMaxInterval:     cfg.RetryMaxInterval,
		RetryMaxElapsed:      cfg.RetryMaxElapsed,
	}
}

type sponsorshipService struct {
	segments    SegmentSource
	extractor   AudioExtractor
	transcriber Transcriber
	summarizer  Summarizer
	lister      VideoLister
	archive     ClipArchive // optional
	cache       domainrepo.ReportCache
	runs        domainrepo.AnalysisRepository
	opts        Options
	logger      *zap.Logger
}

// NewSponsorshipService constructs a new sponsorship service. archive may be
// nil to skip clip archiving.
func NewSponsorshipService(
	segments SegmentSource,
	extractor AudioExtractor,
	transcriber Transcriber,
	summarizer Summarizer,
	lister VideoLister,
	archive ClipArchive,
	cache domainrepo.ReportCache,
	runs domainrepo.AnalysisRepository,
	opts Options,
	logger *zap.Logger,
) Service {
	if opts.ChannelConcurrency < 1 {
		opts.ChannelConcurrency = 1
	}
	if opts.FailurePolicy == "" {
		opts.FailurePolicy = config.PolicySkipSegment
	}
	return &sponsorshipService{
		segments:    segments,
		extractor:   extractor,
		transcriber: transcriber,
		summarizer:  summarizer,
		lister:      lister,
		archive:     archive,
		cache:       cache,
		runs:        runs,
		opts:        opts,
		logger:      logger,
	}
}

// AnalyzeVideo finds and summarizes the sponsorships of one video. A cached
// report is returned when available.
func (s *sponsorshipService) AnalyzeVideo(ctx context.Context, videoURL string) (*entities.VideoReport, error) {
	videoID, err := youtube.ParseVideoID(videoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidVideoURL, videoURL)
	}

	return s.videoReport(ctx, youtube.Video{ID: videoID}, "")
}

// AnalyzeChannel analyzes the count most recent uploads of a channel. Videos
// are analyzed in parallel up to ChannelConcurrency; the result keeps the
// channel's newest-first order.
func (s *sponsorshipService) AnalyzeChannel(ctx context.Context, handle string, count int) (*entities.ChannelReport, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, entities.ErrInvalidChannelHandle
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: got %d", entities.ErrInvalidVideoCount, count)
	}

	videos, err := s.lister.ListRecentVideos(ctx, handle, count)
	if err != nil {
		switch {
		case errors.Is(err, youtube.ErrChannelNotFound):
			return nil, fmt.Errorf("%w: %s", entities.ErrChannelNotFound, handle)
		case errors.Is(err, youtube.ErrInvalidVideoCount):
			return nil, fmt.Errorf("%w: got %d", entities.ErrInvalidVideoCount, count)
		}
		return nil, fmt.Errorf("failed to list videos of %s: %w", handle, err)
	}

	if s.logger != nil {
		s.logger.Info("📺 Analyzing channel",
			zap.String("channel", handle),
			zap.Int("requested", count),
			zap.Int("videos", len(videos)),
		)
	}

	reports := make([]*entities.VideoReport, len(videos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.ChannelConcurrency)

	for i, video := range videos {
		g.Go(func() error {
			report, err := s.videoReport(gctx, video, handle)
			if err != nil {
				if isAbortError(err) || gctx.Err() != nil {
					return err
				}
				// Upstream failure for this video only
				if report == nil {
					report = entities.NewVideoReport(video.ID, video.URL())
					applyVideoMetadata(report, video)
				}
				report.MarkFailed(err.Error())
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &entities.ChannelReport{
		Handle:     handle,
		Requested:  count,
		Videos:     reports,
		AnalyzedAt: time.Now().UTC(),
	}, nil
}

// GetReport returns the cached report of a video
func (s *sponsorshipService) GetReport(ctx context.Context, videoID string) (*entities.VideoReport, error) {
	id, err := youtube.ParseVideoID(videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidVideoURL, videoID)
	}
	if s.cache == nil {
		return nil, entities.ErrReportNotFound
	}

	report, found, err := s.cache.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read report cache: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", entities.ErrReportNotFound, id)
	}
	return report, nil
}

// DeleteReport evicts the cached report of a video so the next request
// analyzes it again
func (s *sponsorshipService) DeleteReport(ctx context.Context, videoID string) error {
	id, err := youtube.ParseVideoID(videoID)
	if err != nil {
		return fmt.Errorf("%w: %q", entities.ErrInvalidVideoURL, videoID)
	}
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete cached report: %w", err)
	}
	return nil
}

// GetRun returns one analysis run
func (s *sponsorshipService) GetRun(ctx context.Context, runID uuid.UUID) (*entities.AnalysisRun, error) {
	if s.runs == nil {
		return nil, entities.ErrRunNotFound
	}
	run, err := s.runs.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}
	if run == nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrRunNotFound, runID)
	}
	return run, nil
}

// ListRuns returns the most recent analysis runs, optionally only those of
// one video
func (s *sponsorshipService) ListRuns(ctx context.Context, videoID string, limit int) ([]entities.AnalysisRun, error) {
	if s.runs == nil {
		return []entities.AnalysisRun{}, nil
	}

	var (
		runs []entities.AnalysisRun
		err  error
	)
	if videoID == "" {
		runs, err = s.runs.ListRecentRuns(ctx, limit)
	} else {
		id, perr := youtube.ParseVideoID(videoID)
		if perr != nil {
			return nil, fmt.Errorf("%w: %q", entities.ErrInvalidVideoURL, videoID)
		}
		runs, err = s.runs.ListRunsByVideo(ctx, id, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	return runs, nil
}

// videoReport serves a video from the cache or analyzes it
func (s *sponsorshipService) videoReport(ctx context.Context, video youtube.Video, handle string) (*entities.VideoReport, error) {
	if report, ok := s.cachedReport(ctx, video.ID); ok {
		applyVideoMetadata(report, video)
		return report, nil
	}

	report, err := s.analyze(ctx, video, handle)
	if report != nil {
		applyVideoMetadata(report, video)
	}
	return report, err
}

func (s *sponsorshipService) cachedReport(ctx context.Context, videoID string) (*entities.VideoReport, bool) {
	if s.cache == nil {
		return nil, false
	}
	report, found, err := s.cache.Get(ctx, videoID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Report cache read failed", zap.String("video_id", videoID), zap.Error(err))
		}
		return nil, false
	}
	if found && s.logger != nil {
		s.logger.Info("♻️ Serving cached report", zap.String("video_id", videoID))
	}
	return report, found
}

// analyze runs the pipeline for one video. It returns a non-nil report
// whenever the run got past segment lookup, including aborted runs.
func (s *sponsorshipService) analyze(ctx context.Context, video youtube.Video, handle string) (*entities.VideoReport, error) {
	runID := uuid.New()
	ctx, cancel := jobcontext.RunBegin(ctx, runID, video.ID, s.opts.RunTimeout)
	defer cancel()
	if handle != "" {
		ctx = jobcontext.WithChannel(ctx, handle)
	}

	run := entities.NewAnalysisRun(runID, video.ID, handle)
	s.createRun(ctx, run)

	report := entities.NewVideoReport(video.ID, video.URL())

	intervals, err := s.sponsorIntervals(ctx, video.ID)
	if err != nil {
		report.MarkFailed(err.Error())
		s.finishRun(ctx, run, report)
		return nil, err
	}
	report.SegmentCount = len(intervals)

	if s.logger != nil {
		s.logger.Info("🎬 Analyzing video",
			zap.String("run_id", runID.String()),
			zap.String("video_id", video.ID),
			zap.Int("sponsorships", len(intervals)),
		)
	}

	for _, iv := range intervals {
		sp, err := s.processInterval(ctx, report.URL, video.ID, iv)
		if err == nil {
			report.Sponsorships = append(report.Sponsorships, *sp)
			continue
		}

		if ctx.Err() != nil {
			report.MarkFailed(ctx.Err().Error())
			s.finishRun(ctx, run, report)
			return report, fmt.Errorf("analysis of %s interrupted: %w", video.ID, ctx.Err())
		}

		var unavailable *streamError
		if errors.As(err, &unavailable) {
			// The stream is gone for every remaining interval too
			if s.logger != nil {
				s.logger.Warn("🚫 Video stream unavailable",
					zap.String("video_id", video.ID),
					zap.Error(err),
				)
			}
			report.MarkUnavailable(err.Error())
			break
		}

		if s.opts.FailurePolicy == config.PolicyAbortRun {
			if s.logger != nil {
				s.logger.Error("❌ Aborting run after segment failure",
					zap.String("video_id", video.ID),
					zap.Float64("start", iv.Start),
					zap.Error(err),
				)
			}
			report.MarkFailed(err.Error())
			s.finishRun(ctx, run, report)
			return report, err
		}

		if s.logger != nil {
			s.logger.Warn("⏭️ Skipping segment",
				zap.String("video_id", video.ID),
				zap.Float64("start", iv.Start),
				zap.Float64("stop", iv.Stop),
				zap.Error(err),
			)
		}
		report.SkippedSegments++
	}

	report.Finalize()
	s.storeReport(ctx, report)
	s.finishRun(ctx, run, report)

	if s.logger != nil {
		s.logger.Info("✅ Video analyzed",
			zap.String("run_id", runID.String()),
			zap.String("video_id", video.ID),
			zap.String("status", string(report.Status)),
			zap.Int("sponsorships", len(report.Sponsorships)),
			zap.Int("skipped", report.SkippedSegments),
		)
	}
	return report, nil
}

// sponsorIntervals fetches the skip segments of a video and reconciles them
func (s *sponsorshipService) sponsorIntervals(ctx context.Context, videoID string) ([]segment.Interval, error) {
	segments, err := s.segments.GetSkipSegments(ctx, videoID)
	if err != nil {
		if errors.Is(err, sponsorblock.ErrNotFound) {
			return []segment.Interval{}, nil
		}
		return nil, fmt.Errorf("failed to fetch segments for %s: %w", videoID, err)
	}

	skips := lo.Filter(segments, func(seg sponsorblock.Segment, _ int) bool {
		return seg.ActionType == sponsorblock.ActionSkip
	})
	intervals := lo.Map(skips, func(seg sponsorblock.Segment, _ int) segment.Interval {
		return seg.Interval()
	})

	// Zero-length segments carry no audio
	return lo.Filter(segment.Reconcile(intervals, s.opts.Tolerance), func(iv segment.Interval, _ int) bool {
		return iv.Duration() > 0
	}), nil
}

// streamError marks a lost video stream; it ends the whole video
type streamError struct{ err error }

func (e *streamError) Error() string { return e.err.Error() }
func (e *streamError) Unwrap() error { return e.err }

func (s *sponsorshipService) processInterval(ctx context.Context, videoURL, videoID string, iv segment.Interval) (*entities.Sponsorship, error) {
	sp := entities.NewSponsorship(iv)

	audio, err := s.extractor.ExtractAudio(ctx, videoURL, iv)
	if err != nil {
		err = fmt.Errorf("failed to extract audio %.3f-%.3f: %w", iv.Start, iv.Stop, err)
		if errors.Is(err, media.ErrStreamUnavailable) {
			return nil, &streamError{err: err}
		}
		return nil, err
	}

	s.archiveClip(ctx, videoID, iv, audio, &sp)

	var transcript *ai.Transcript
	err = s.retry(ctx, "transcribe", func() error {
		var err error
		transcript, err = s.transcriber.Transcribe(ctx, audio)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrTranscriptionFailed, err)
	}
	if transcript.Status != ai.TranscriptStatusOK {
		return nil, fmt.Errorf("%w: %s", entities.ErrTranscriptionFailed, transcript.Error)
	}
	if strings.TrimSpace(transcript.Text) == "" {
		return nil, fmt.Errorf("%w: empty transcript", entities.ErrTranscriptionFailed)
	}
	sp.Transcript = transcript.Text

	var summary string
	err = s.retry(ctx, "summarize", func() error {
		var err error
		summary, err = s.summarizer.GenerateSummary(ctx, ai.SponsorshipPrompt(transcript.Text))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrSummaryFailed, err)
	}
	sp.Summary = ai.CleanSummary(summary)
	if sp.Summary == "" {
		return nil, fmt.Errorf("%w: empty summary", entities.ErrSummaryFailed)
	}

	return &sp, nil
}

// archiveClip is best-effort; a failed upload leaves the clip fields empty
func (s *sponsorshipService) archiveClip(ctx context.Context, videoID string, iv segment.Interval, audio []byte, sp *entities.Sponsorship) {
	if s.archive == nil {
		return
	}
	object, err := s.archive.UploadClip(ctx, videoID, iv, audio)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Failed to archive clip", zap.String("video_id", videoID), zap.Error(err))
		}
		return
	}
	sp.ClipObject = object

	url, err := s.archive.GetFileURL(ctx, object, s.opts.ReportTTL)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Failed to sign clip URL", zap.String("object", object), zap.Error(err))
		}
		return
	}
	sp.ClipURL = url
}

// retry runs fn with exponential backoff; errors that are not transient stop
// the retries immediately
func (s *sponsorshipService) retry(ctx context.Context, op string, fn func() error) error {
	bo := backoff.NewExponentialBackOff()
	if s.opts.RetryInitialInterval > 0 {
		bo.InitialInterval = s.opts.RetryInitialInterval
	}
	if s.opts.RetryMaxInterval > 0 {
		bo.MaxInterval = s.opts.RetryMaxInterval
	}
	if s.opts.RetryMaxElapsed > 0 {
		bo.MaxElapsedTime = s.opts.RetryMaxElapsed
	}

	operation := func() error {
		err := fn()
		if err != nil && !jobcontext.IsRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		if s.logger != nil {
			meta := jobcontext.GetRunMetadata(ctx)
			s.logger.Warn("🔁 Retrying",
				zap.String("op", op),
				zap.String("run_id", meta.RunID.String()),
				zap.String("video_id", meta.VideoID),
				zap.String("channel", meta.ChannelHandle),
				zap.Duration("elapsed", time.Since(meta.StartTime)),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		}
	}

	return backoff.RetryNotify(operation, backoff.WithContext(bo, ctx), notify)
}

func (s *sponsorshipService) storeReport(ctx context.Context, report *entities.VideoReport) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, report, s.opts.ReportTTL); err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Failed to cache report", zap.String("video_id", report.VideoID), zap.Error(err))
	}
}

func (s *sponsorshipService) createRun(ctx context.Context, run *entities.AnalysisRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.CreateRun(ctx, run); err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Failed to record analysis run", zap.String("run_id", run.ID.String()), zap.Error(err))
	}
}

// finishRun persists the outcome even when ctx has already ended
func (s *sponsorshipService) finishRun(ctx context.Context, run *entities.AnalysisRun, report *entities.VideoReport) {
	if s.runs == nil {
		return
	}
	if err := run.Complete(report); err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Failed to encode report", zap.String("run_id", run.ID.String()), zap.Error(err))
		}
		return
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.runs.UpdateRun(saveCtx, run); err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Failed to update analysis run", zap.String("run_id", run.ID.String()), zap.Error(err))
	}
}

func applyVideoMetadata(report *entities.VideoReport, video youtube.Video) {
	if video.Title != "" {
		report.Title = video.Title
	}
	if !video.PublishedAt.IsZero() {
		published := video.PublishedAt
		report.PublishedAt = &published
		report.TimeAgo = humanize.Time(published)
	}
}

func isAbortError(err error) bool {
	return errors.Is(err, entities.ErrTranscriptionFailed) || errors.Is(err, entities.ErrSummaryFailed)
}
