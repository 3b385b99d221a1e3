package attendees

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"stampcard/internal/booths"
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

// Register godoc
// @Summary Open a stamp card
// @Tags cards
// @Accept json
// @Produce json
// @Param body body RegisterCardRequest true "Attendee"
// @Success 201 {object} response.StandardApiResponse
// @Router /cards [post]
func (ctrl *Controller) Register(c *gin.Context) {
	var req RegisterCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	card, err := ctrl.service.Register(c.Request.Context(), &req)
	if err != nil {
		ctrl.respondError(c, err, "Failed to register card")
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Card registered successfully", card, nil)
}

func (ctrl *Controller) GetCard(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	card, err := ctrl.service.GetCard(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, err, "Failed to load card")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Card retrieved successfully", card, nil)
}

// CollectStamp godoc
// @Summary Collect a booth stamp with the scanned booth code
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param body body CollectStampRequest true "Scanned code"
// @Success 200 {object} response.StandardApiResponse
// @Failure 422 {object} response.StandardApiResponse
// @Router /cards/{id}/stamps [post]
func (ctrl *Controller) CollectStamp(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	var req CollectStampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	result, err := ctrl.service.CollectStamp(c.Request.Context(), id, &req)
	if err != nil {
		ctrl.respondError(c, err, "Failed to collect stamp")
		return
	}

	message := "Stamp collected! Great job!"
	if result.Status == StampStatusAlreadyStamped {
		message = "Booth already stamped"
	}
	response.RespondJSON(c, "success", http.StatusOK, message, result, nil)
}

func (ctrl *Controller) GetSubmission(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	submission, err := ctrl.service.Submission(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, err, "Failed to build submission")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Show this QR code to an admin to enter the lucky draw", submission, nil)
}

func (ctrl *Controller) GetSubmissionQRCode(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	png, err := ctrl.service.SubmissionQR(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, err, "Failed to build submission")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func (ctrl *Controller) Logout(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}

	if err := ctrl.service.Logout(c.Request.Context(), id); err != nil {
		ctrl.respondError(c, err, "Failed to logout")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Logged out successfully", nil, nil)
}

func (ctrl *Controller) GetEligibleRoster(c *gin.Context) {
	text, err := ctrl.service.EligibleRoster(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to build roster", nil, nil)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func (ctrl *Controller) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrCardNotFound), errors.Is(err, booths.ErrBoothNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrUnknownTeam):
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, booths.ErrWrongCode), errors.Is(err, ErrNotEligible):
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}

func parseCardID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid card ID", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}
