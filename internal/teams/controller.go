package teams

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"stampcard/internal/shared/utils/response"
)

type TeamListResponse struct {
	Teams []string `json:"teams"`
}

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

// ListTeams godoc
// @Summary Teams available at registration
// @Tags teams
// @Produce json
// @Success 200 {object} response.StandardApiResponse
// @Router /teams [get]
func (ctrl *Controller) ListTeams(c *gin.Context) {
	names, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load teams", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Teams retrieved successfully", TeamListResponse{Teams: names}, nil)
}

func (ctrl *Controller) ReplaceTeams(c *gin.Context) {
	var req ReplaceTeamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	names, err := ctrl.service.Replace(c.Request.Context(), req.Teams)
	if err != nil {
		if errors.Is(err, ErrEmptyTeamList) {
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to save teams", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Team list updated successfully!", TeamListResponse{Teams: names}, nil)
}
