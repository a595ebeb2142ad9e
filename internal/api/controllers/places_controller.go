package controllers

import (
	"github.com/gin-gonic/gin"

	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

type PlacesController struct {
	geocoder services.GeocoderServiceInterface
}

func NewPlacesController(geocoder services.GeocoderServiceInterface) *PlacesController {
	return &PlacesController{geocoder: geocoder}
}

// SuggestPlacesHandler backs the destination autocomplete box. Queries shorter
// than two characters return an empty list.
func (p *PlacesController) SuggestPlacesHandler(c *gin.Context) {
	suggestions, err := p.geocoder.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, suggestions, "Suggestions fetched successfully")
}
