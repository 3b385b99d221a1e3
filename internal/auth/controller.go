package auth

import (
	"errors"
	"net/http"

	"stampcard/internal/shared/middleware"
	"stampcard/internal/shared/utils/response"
	"stampcard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
	log       *logger.Logger
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
		log:       logger.GetDefault(),
	}
}

// AdminLogin godoc
// @Summary Exchange the shared admin password for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body AdminLoginRequest true "Admin password"
// @Success 200 {object} response.StandardApiResponse
// @Failure 401 {object} response.StandardApiResponse
// @Router /auth/admin/login [post]
func (c *Controller) AdminLogin(ctx *gin.Context) {
	var req AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, response.ValidationErrors(err))
		return
	}

	resp, err := c.service.AdminLogin(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.log.LogAuthFailure(ctx.Request.Context(), "incorrect admin password", ctx.ClientIP())
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Incorrect password", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to login", nil, nil)
		return
	}

	c.log.LogAuthSuccess(ctx.Request.Context(), AdminSubject, "password")
	response.RespondJSON(ctx, "success", http.StatusOK, "Login successful", resp, nil)
}

func (c *Controller) GetMe(ctx *gin.Context) {
	subject, _ := ctx.Get(middleware.ContextKeySubject)
	role, _ := ctx.Get(middleware.ContextKeyRole)

	response.RespondJSON(ctx, "success", http.StatusOK, "Session retrieved successfully", map[string]interface{}{
		"subject": subject,
		"role":    role,
	}, nil)
}
