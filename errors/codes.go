package errors

import "fmt"

// ErrorCode identifies a class of application error in API responses
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003
	ErrorCode_VALIDATION       ErrorCode = 1004

	// Sponsorship analysis
	ErrorCode_VIDEO_INVALID_URL      ErrorCode = 2000
	ErrorCode_CHANNEL_NOT_FOUND      ErrorCode = 2002
	ErrorCode_CHANNEL_INVALID_HANDLE ErrorCode = 2003
	ErrorCode_CHANNEL_INVALID_COUNT  ErrorCode = 2004
	ErrorCode_REPORT_NOT_FOUND       ErrorCode = 2005
	ErrorCode_PROCESSING_FAILED      ErrorCode = 2006

	// AI
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 3000
	ErrorCode_AI_SUMMARY_FAILED       ErrorCode = 3001

	// Integration
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 4000
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 4001
	ErrorCode_DB_QUERY_FAILED                 ErrorCode = 4003
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_VALIDATION:                      "VALIDATION",
	ErrorCode_VIDEO_INVALID_URL:               "VIDEO_INVALID_URL",
	ErrorCode_CHANNEL_NOT_FOUND:               "CHANNEL_NOT_FOUND",
	ErrorCode_CHANNEL_INVALID_HANDLE:          "CHANNEL_INVALID_HANDLE",
	ErrorCode_CHANNEL_INVALID_COUNT:           "CHANNEL_INVALID_COUNT",
	ErrorCode_REPORT_NOT_FOUND:                "REPORT_NOT_FOUND",
	ErrorCode_PROCESSING_FAILED:               "PROCESSING_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:         "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SUMMARY_FAILED:               "AI_SUMMARY_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// MarshalText renders the code by name in JSON bodies
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
