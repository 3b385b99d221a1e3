package draws

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"stampcard/internal/roster"
	"stampcard/internal/shared/utils/response"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// CreateSession godoc
// @Summary Start a lucky draw session
// @Tags draws
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.StandardApiResponse
// @Router /admin/draws/sessions [post]
func (ctrl *Controller) CreateSession(c *gin.Context) {
	session, err := ctrl.service.CreateSession(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Failed to create draw session")
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Draw session created", session, nil)
}

func (ctrl *Controller) GetSession(c *gin.Context) {
	session, err := ctrl.service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctrl.respondError(c, err, "Failed to load draw session")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Draw session retrieved successfully", session, nil)
}

// ReplaceRoster godoc
// @Summary Replace the roster with pasted participant data
// @Tags draws
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body ReplaceRosterRequest true "Roster text, one token per line"
// @Success 200 {object} response.StandardApiResponse
// @Router /admin/draws/sessions/{id}/roster [put]
func (ctrl *Controller) ReplaceRoster(c *gin.Context) {
	var req ReplaceRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	session, err := ctrl.service.ReplaceRoster(c.Request.Context(), c.Param("id"), req.Roster)
	if err != nil {
		ctrl.respondError(c, err, "Failed to update roster")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Roster updated", session, nil)
}

func (ctrl *Controller) ImportCards(c *gin.Context) {
	result, err := ctrl.service.ImportCards(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctrl.respondError(c, err, "Failed to import cards")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Eligible cards imported", result, nil)
}

// Scan godoc
// @Summary Add a scanned attendee token to the roster
// @Tags draws
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body ScanRequest true "Scanned token"
// @Success 200 {object} response.StandardApiResponse
// @Failure 422 {object} response.StandardApiResponse
// @Router /admin/draws/sessions/{id}/scan [post]
func (ctrl *Controller) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	result, err := ctrl.service.Scan(c.Request.Context(), c.Param("id"), req.Token)
	if err != nil {
		ctrl.respondError(c, err, "Failed to scan entry")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, result.Message, result, nil)
}

func (ctrl *Controller) ClearRoster(c *gin.Context) {
	session, err := ctrl.service.ClearRoster(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctrl.respondError(c, err, "Failed to clear roster")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Roster cleared", session, nil)
}

// Draw godoc
// @Summary Draw winners from the eligible roster
// @Tags draws
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body DrawRequest false "Number of winners"
// @Success 200 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Failure 422 {object} response.StandardApiResponse
// @Router /admin/draws/sessions/{id}/draw [post]
func (ctrl *Controller) Draw(c *gin.Context) {
	var req DrawRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
			return
		}
	}

	result, err := ctrl.service.Draw(c.Request.Context(), c.Param("id"), req.Winners)
	if err != nil {
		ctrl.respondError(c, err, "Failed to draw winners")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "And the winners are...", result, nil)
}

// ExportCSV godoc
// @Summary Download eligible participants as CSV
// @Tags draws
// @Produce text/csv
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {string} string
// @Router /admin/draws/sessions/{id}/export [get]
func (ctrl *Controller) ExportCSV(c *gin.Context) {
	csv, err := ctrl.service.ExportCSV(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctrl.respondError(c, err, "Failed to export participants")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="eligible_participants.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

func (ctrl *Controller) Reset(c *gin.Context) {
	session, err := ctrl.service.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctrl.respondError(c, err, "Failed to reset draw")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Draw reset", session, nil)
}

func (ctrl *Controller) DeleteSession(c *gin.Context) {
	if err := ctrl.service.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		ctrl.respondError(c, err, "Failed to delete draw session")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Draw session deleted", nil, nil)
}

// GetHistory godoc
// @Summary List past draws, newest first
// @Tags draws
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max results (default 20, max 100)"
// @Success 200 {object} response.StandardApiResponse
// @Router /admin/draws/history [get]
func (ctrl *Controller) GetHistory(c *gin.Context) {
	limit := DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid limit", nil, err.Error())
			return
		}
		limit = parsed
	}

	history, err := ctrl.service.History(c.Request.Context(), limit)
	if err != nil {
		ctrl.respondError(c, err, "Failed to load draw history")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Draw history retrieved successfully", history, nil)
}

func (ctrl *Controller) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrDrawInProgress), errors.Is(err, ErrSessionBusy):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, roster.ErrEmptyPool),
		errors.Is(err, roster.ErrInvalidCount),
		errors.Is(err, roster.ErrInsufficientPool),
		errors.Is(err, roster.ErrInvalidRecord),
		errors.Is(err, ErrIneligibleEntry),
		errors.Is(err, ErrNothingToExport):
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	case errors.Is(err, ErrNoRosterSource):
		response.RespondJSON(c, "error", http.StatusServiceUnavailable, err.Error(), nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}
