package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
}

func NewTripController(tripService services.TripServiceInterface) *TripController {
	return &TripController{
		tripService: tripService,
	}
}

// GenerateTripHandler answers with the bare TripPlan rather than the API
// envelope; browser clients render the body directly.
func (t *TripController) GenerateTripHandler(c *gin.Context) {
	var req request_models.GenerateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBareError(c, http.StatusBadRequest, "location is required and days must be between 1 and 30")
		return
	}

	plan, err := t.tripService.GenerateTrip(c.Request.Context(), services.NewTripRequest(req))
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidTripRequest):
			respondBareError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, utils.ErrModelNotConfigured):
			respondBareError(c, http.StatusInternalServerError, "Server misconfiguration: model credentials not set")
		default:
			_ = c.Error(err)
			respondBareError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

func respondBareError(c *gin.Context, code int, message string) {
	c.JSON(code, utils.ErrorBody{Error: message, TraceID: c.GetString("trace_id")})
}
