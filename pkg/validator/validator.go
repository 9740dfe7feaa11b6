package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/johnquangdev/sponsor-digest/pkg/youtube"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance with the project's custom tags
// registered
func New() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("youtube_url", validateYouTubeURL)      //nolint:errcheck
	v.RegisterValidation("channel_handle", validateChannelHandle) //nolint:errcheck
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// validateYouTubeURL accepts anything youtube.ParseVideoID understands
func validateYouTubeURL(fl validator.FieldLevel) bool {
	_, err := youtube.ParseVideoID(fl.Field().String())
	return err == nil
}

// validateChannelHandle accepts "@name" or "name" without whitespace
func validateChannelHandle(fl validator.FieldLevel) bool {
	handle := strings.TrimPrefix(strings.TrimSpace(fl.Field().String()), "@")
	return handle != "" && !strings.ContainsAny(handle, " \t\n/?#")
}
