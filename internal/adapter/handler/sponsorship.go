package handler

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/sponsor-digest/errors"
	"github.com/johnquangdev/sponsor-digest/internal/adapter/dto/common"
	dto "github.com/johnquangdev/sponsor-digest/internal/adapter/dto/sponsorship"
	"github.com/johnquangdev/sponsor-digest/internal/adapter/presenter"
	"github.com/johnquangdev/sponsor-digest/internal/domain/entities"
	"github.com/johnquangdev/sponsor-digest/internal/usecase/sponsorship"
	"github.com/johnquangdev/sponsor-digest/pkg/config"
)

const (
	defaultRunsLimit = 20
	maxVideoCount    = 50
)

// Sponsorship handles sponsorship analysis endpoints
type Sponsorship struct {
	svc    sponsorship.Service
	cfg    *config.Config
	logger *zap.Logger
}

// NewSponsorshipHandler creates a new sponsorship handler
func NewSponsorshipHandler(svc sponsorship.Service, cfg *config.Config, logger *zap.Logger) *Sponsorship {
	return &Sponsorship{svc: svc, cfg: cfg, logger: logger}
}

// AnalyzeVideo summarizes the sponsorships of one video
// @Summary      Analyze video
// @Description  Finds the sponsored segments of a YouTube video, transcribes them and summarizes each advertisement
// @Tags         Sponsorships
// @Accept       json
// @Produce      json
// @Param        request  body      sponsorship.AnalyzeVideoRequest  true  "Video URL and refresh flag"
// @Success      200      {object}  sponsorship.VideoReportResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid video URL"
// @Failure      502      {object}  map[string]interface{}  "Upstream service failed"
// @Router       /sponsorships/video [post]
func (h *Sponsorship) AnalyzeVideo(c echo.Context) error {
	var req dto.AnalyzeVideoRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidVideoURL(req.URL))
	}

	if req.Refresh {
		if err := h.svc.DeleteReport(c.Request().Context(), req.URL); err != nil {
			return HandleError(h.logger, c, errors.ErrCacheFailed("delete report", err))
		}
	}

	report, err := h.svc.AnalyzeVideo(c.Request().Context(), req.URL)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, req.URL))
	}

	return HandleSuccess(h.logger, c, presenter.ToVideoReportResponse(report))
}

// AnalyzeChannel summarizes the sponsorships of a channel's recent uploads
// @Summary      Analyze channel
// @Description  Analyzes the most recent uploads of a channel, newest first
// @Tags         Sponsorships
// @Accept       json
// @Produce      json
// @Param        request  body      sponsorship.AnalyzeChannelRequest  true  "Channel handle and video count"
// @Success      200      {object}  sponsorship.ChannelReportResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid handle or count"
// @Failure      404      {object}  map[string]interface{}  "Channel not found"
// @Failure      502      {object}  map[string]interface{}  "Upstream service failed"
// @Router       /sponsorships/channel [post]
func (h *Sponsorship) AnalyzeChannel(c echo.Context) error {
	var req dto.AnalyzeChannelRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	count := h.cfg.Analysis.DefaultVideoCount
	if req.Count != nil {
		count = *req.Count
	}
	if count < 1 || count > maxVideoCount {
		return HandleError(h.logger, c, errors.ErrInvalidVideoCount(count))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidChannelHandle())
	}

	report, err := h.svc.AnalyzeChannel(c.Request().Context(), req.Handle, count)
	if err != nil {
		if stdErrors.Is(err, entities.ErrInvalidVideoCount) {
			return HandleError(h.logger, c, errors.ErrInvalidVideoCount(count))
		}
		return HandleError(h.logger, c, toAppError(err, req.Handle))
	}

	return HandleSuccess(h.logger, c, presenter.ToChannelReportResponse(report))
}

// GetReport returns the cached report of a video
// @Summary      Get report
// @Description  Returns the last stored report of a video without analyzing it again
// @Tags         Sponsorships
// @Produce      json
// @Param        videoId  path      string  true  "YouTube video ID or URL"
// @Success      200      {object}  sponsorship.VideoReportResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid video ID"
// @Failure      404      {object}  map[string]interface{}  "Report not found"
// @Router       /sponsorships/reports/{videoId} [get]
func (h *Sponsorship) GetReport(c echo.Context) error {
	videoID := c.Param("videoId")

	report, err := h.svc.GetReport(c.Request().Context(), videoID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrReportNotFound) {
			return HandleError(h.logger, c, errors.ErrReportNotFound(videoID))
		}
		if stdErrors.Is(err, entities.ErrInvalidVideoURL) {
			return HandleError(h.logger, c, errors.ErrInvalidVideoURL(videoID))
		}
		return HandleError(h.logger, c, errors.ErrCacheFailed("get report", err))
	}

	return HandleSuccess(h.logger, c, presenter.ToVideoReportResponse(report))
}

// DeleteReport evicts the cached report of a video
// @Summary      Delete report
// @Description  Removes the stored report of a video so the next analysis starts fresh
// @Tags         Sponsorships
// @Produce      json
// @Param        videoId  path      string  true  "YouTube video ID or URL"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]interface{}  "Invalid video ID"
// @Failure      500      {object}  map[string]interface{}  "Cache operation failed"
// @Router       /sponsorships/reports/{videoId} [delete]
func (h *Sponsorship) DeleteReport(c echo.Context) error {
	videoID := c.Param("videoId")

	if err := h.svc.DeleteReport(c.Request().Context(), videoID); err != nil {
		if stdErrors.Is(err, entities.ErrInvalidVideoURL) {
			return HandleError(h.logger, c, errors.ErrInvalidVideoURL(videoID))
		}
		return HandleError(h.logger, c, errors.ErrCacheFailed("delete report", err))
	}

	return HandleSuccess(h.logger, c, nil)
}

// ListRuns returns the analysis history
// @Summary      List analysis runs
// @Description  Lists the most recent analysis runs, newest first, optionally for one video
// @Tags         Sponsorships
// @Produce      json
// @Param        video_id  query     string  false  "Only runs of this YouTube video ID or URL"
// @Param        limit     query     int     false  "Maximum number of runs (1-100)"
// @Success      200       {object}  common.ListResponse
// @Failure      400       {object}  map[string]interface{}  "Invalid limit or video ID"
// @Failure      500       {object}  map[string]interface{}  "Database query failed"
// @Router       /sponsorships/runs [get]
func (h *Sponsorship) ListRuns(c echo.Context) error {
	var req dto.ListRunsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("limit must be a number"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}
	if req.Limit == 0 {
		req.Limit = defaultRunsLimit
	}

	runs, err := h.svc.ListRuns(c.Request().Context(), req.VideoID, req.Limit)
	if err != nil {
		if stdErrors.Is(err, entities.ErrInvalidVideoURL) {
			return HandleError(h.logger, c, errors.ErrInvalidVideoURL(req.VideoID))
		}
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("list analysis runs", err))
	}

	items := presenter.ToAnalysisRunResponses(runs)
	return HandleSuccess(h.logger, c, common.ListResponse{Items: items, Count: len(items)})
}

// GetRun returns one analysis run
// @Summary      Get analysis run
// @Description  Returns one analysis run by ID
// @Tags         Sponsorships
// @Produce      json
// @Param        id   path      string  true  "Run ID (UUID)"
// @Success      200  {object}  sponsorship.AnalysisRunResponse
// @Failure      400  {object}  map[string]interface{}  "Invalid run ID"
// @Failure      404  {object}  map[string]interface{}  "Run not found"
// @Failure      500  {object}  map[string]interface{}  "Database query failed"
// @Router       /sponsorships/runs/{id} [get]
func (h *Sponsorship) GetRun(c echo.Context) error {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("run id must be a UUID"))
	}

	run, err := h.svc.GetRun(c.Request().Context(), runID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrRunNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("analysis run").WithDetail("run_id", runID.String()))
		}
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("get analysis run", err))
	}

	return HandleSuccess(h.logger, c, presenter.ToAnalysisRunResponse(run))
}

// toAppError maps domain errors returned by the service to API errors.
// subject is the video URL or channel handle of the request.
func toAppError(err error, subject string) error {
	var appErr errors.AppError
	switch {
	case stdErrors.As(err, &appErr):
		return appErr
	case stdErrors.Is(err, entities.ErrInvalidVideoURL):
		return errors.ErrInvalidVideoURL(subject)
	case stdErrors.Is(err, entities.ErrInvalidChannelHandle):
		return errors.ErrInvalidChannelHandle()
	case stdErrors.Is(err, entities.ErrChannelNotFound):
		return errors.ErrChannelNotFound(subject)
	case stdErrors.Is(err, entities.ErrReportNotFound):
		return errors.ErrReportNotFound(subject)
	case stdErrors.Is(err, entities.ErrTranscriptionFailed):
		return errors.ErrAITranscriptionFailed(err)
	case stdErrors.Is(err, entities.ErrSummaryFailed):
		return errors.ErrAISummaryFailed(err)
	case stdErrors.Is(err, context.DeadlineExceeded), stdErrors.Is(err, context.Canceled):
		return errors.ErrProcessingFailed(err)
	default:
		return errors.ErrExternalAPIFailed("upstream", err)
	}
}
