package booths

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stampcard/internal/shared/utils/response"
)

type Controller interface {
	ListBooths(c *gin.Context)
	GetBooth(c *gin.Context)
	GetBoothQRCode(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// ListBooths godoc
// @Summary List booths on the stamp trail
// @Tags booths
// @Produce json
// @Success 200 {object} response.StandardApiResponse
// @Router /booths [get]
func (ctrl *controller) ListBooths(c *gin.Context) {
	booths := ctrl.service.List()
	out := make([]BoothResponse, 0, len(booths))
	for _, b := range booths {
		out = append(out, b.ToResponse())
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booths retrieved successfully", BoothListResponse{
		Booths: out,
		Total:  len(out),
	}, nil)
}

func (ctrl *controller) GetBooth(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booth ID", nil, err.Error())
		return
	}

	booth, err := ctrl.service.Get(id)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booth retrieved successfully", booth.ToResponse(), nil)
}

// GetBoothQRCode godoc
// @Summary Printable QR code for a booth's secret
// @Tags admin
// @Produce png
// @Security BearerAuth
// @Param id path int true "Booth ID"
// @Router /admin/booths/{id}/qr [get]
func (ctrl *controller) GetBoothQRCode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booth ID", nil, err.Error())
		return
	}

	png, err := ctrl.service.QRCode(id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrBoothNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	c.Header("Content-Disposition", "inline; filename=booth-"+strconv.Itoa(id)+".png")
	c.Data(http.StatusOK, "image/png", png)
}
