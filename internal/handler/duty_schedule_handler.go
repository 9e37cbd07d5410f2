package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/library-duty-api/internal/dto"
	"github.com/noah-isme/library-duty-api/internal/service"
	appErrors "github.com/noah-isme/library-duty-api/pkg/errors"
	"github.com/noah-isme/library-duty-api/pkg/response"
)

type dutyScheduler interface {
	Generate(ctx context.Context, req dto.GenerateDutyScheduleRequest) (*dto.GenerateDutyScheduleResult, error)
	Get(ctx context.Context, term string) (*dto.DutyScheduleView, bool, error)
	Audit(ctx context.Context, term string) (*dto.DutyScheduleAudit, error)
}

// DutyScheduleHandler exposes library duty schedule endpoints.
type DutyScheduleHandler struct {
	service dutyScheduler
}

// NewDutyScheduleHandler constructs the handler.
func NewDutyScheduleHandler(svc *service.DutyScheduleService) *DutyScheduleHandler {
	return &DutyScheduleHandler{service: svc}
}

// Generate godoc
// @Summary Generate the library duty schedule for a term
// @Description Refuses with 409 when a schedule exists and forceRegenerate is false.
// @Tags Duty
// @Accept json
// @Produce json
// @Param payload body dto.GenerateDutyScheduleRequest true "Generate payload"
// @Success 200 {object} response.Envelope
// @Router /duty-schedules/generate [post]
func (h *DutyScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateDutyScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !result.Success {
		response.Failure(c, refusalError(result), result)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Get godoc
// @Summary Get the persisted duty schedule of a term
// @Tags Duty
// @Produce json
// @Param term path string true "FIRST_TERM or SECOND_TERM"
// @Success 200 {object} response.Envelope
// @Router /duty-schedules/{term} [get]
func (h *DutyScheduleHandler) Get(c *gin.Context) {
	view, cached, err := h.service.Get(c.Request.Context(), c.Param("term"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, map[string]interface{}{"cached": cached})
}

// Audit godoc
// @Summary Re-check a persisted duty schedule against the roster
// @Tags Duty
// @Produce json
// @Param term path string true "FIRST_TERM or SECOND_TERM"
// @Success 200 {object} response.Envelope
// @Router /duty-schedules/{term}/audit [get]
func (h *DutyScheduleHandler) Audit(c *gin.Context) {
	audit, err := h.service.Audit(c.Request.Context(), c.Param("term"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, audit)
}

func refusalError(result *dto.GenerateDutyScheduleResult) *appErrors.Error {
	var base *appErrors.Error
	switch result.Code {
	case appErrors.ErrScheduleExists.Code:
		base = appErrors.ErrScheduleExists
	case appErrors.ErrEmptyRoster.Code:
		base = appErrors.ErrEmptyRoster
	case appErrors.ErrCapacityExhausted.Code:
		base = appErrors.ErrCapacityExhausted
	default:
		base = appErrors.ErrInternal
	}
	return appErrors.Clone(base, result.Error)
}
