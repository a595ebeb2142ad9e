package services

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/pkg/utils"
)

const validPlanJSON = `{
  "location": "Paris",
  "days": 1,
  "travellers": "couple",
  "budget": "moderate",
  "currency": "EUR",
  "hotels": [{"hotelName": "Hotel Lutetia", "address": "45 Bd Raspail", "price": 320, "currency": "EUR", "imageUrl": "", "geo": {"lat": 48.85, "lng": 2.32}, "rating": 4.6, "description": "Left bank classic"}],
  "itinerary": [{"day": 1, "date": null, "plans": [{"placeName": "Louvre", "placeDetails": "Museum", "placeImageUrl": "", "geo": {"lat": 48.86, "lng": 2.33}, "ticketPrice": 22, "currency": "EUR", "bestTimeToVisit": "Morning", "estimatedVisitDurationMinutes": 180, "travelTimeFromPreviousMinutes": 0}]}]
}`

func TestValidateModelOutputAcceptsCleanJSON(t *testing.T) {
	plan, err := ValidateModelOutput(validPlanJSON)
	require.NoError(t, err)

	assert.Equal(t, "Paris", plan.Location)
	require.Len(t, plan.Hotels, 1)
	assert.Equal(t, 320.0, plan.Hotels[0].Price)
	require.Len(t, plan.Itinerary, 1)
	assert.Equal(t, 1, plan.Itinerary[0].Day)
	assert.Nil(t, plan.Itinerary[0].Date)
	assert.Equal(t, 180, plan.Itinerary[0].Plans[0].EstimatedVisitDurationMinutes)
	assert.Empty(t, plan.Source)
}

func TestValidateModelOutputExtractsEmbeddedObject(t *testing.T) {
	raw := "Sure! Here is your plan:\n```json\n" + validPlanJSON + "\n```\nEnjoy."

	plan, err := ValidateModelOutput(raw)
	require.NoError(t, err)
	assert.Equal(t, "Hotel Lutetia", plan.Hotels[0].HotelName)
}

func TestValidateModelOutputRejectsEmptyCollectionsAfterExtraction(t *testing.T) {
	_, err := ValidateModelOutput(`prefix garbage {"hotels":[],"itinerary":[]} suffix`)

	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrSchemaFailure)
	assert.NotErrorIs(t, err, utils.ErrParseFailure)
}

func TestValidateModelOutputFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"plain prose", "I cannot help with that.", utils.ErrParseFailure},
		{"broken braces", "{ not json }", utils.ErrParseFailure},
		{"json array", `[1, 2, 3]`, utils.ErrParseFailure},
		{"missing itinerary", `{"hotels": [{"hotelName": "A"}]}`, utils.ErrSchemaFailure},
		{"hotels not an array", `{"hotels": {"a": 1}, "itinerary": [{"day": 1}]}`, utils.ErrSchemaFailure},
		{"null itinerary", `{"hotels": [{"hotelName": "A"}], "itinerary": null}`, utils.ErrSchemaFailure},
		{"wrong field type", `{"hotels": [{"hotelName": 12}], "itinerary": [{"day": 1}]}`, utils.ErrSchemaFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateModelOutput(tt.raw)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateModelOutputNormalizesLooseNumbers(t *testing.T) {
	raw := `{
	  "currency": "USD",
	  "hotels": [{"hotelName": "A", "price": "$1,250 per night", "rating": "7", "geo": {"lat": "12.5", "lon": 77.1}}],
	  "itinerary": [{"day": "1", "plans": [{"placeName": "B", "ticketPrice": {"amount": 15}, "estimatedVisitDurationMinutes": "90 minutes", "travelTimeFromPreviousMinutes": -5}]}]
	}`

	plan, err := ValidateModelOutput(raw)
	require.NoError(t, err)

	hotel := plan.Hotels[0]
	assert.Equal(t, 1250.0, hotel.Price)
	assert.Equal(t, 5.0, hotel.Rating)
	assert.Equal(t, "USD", hotel.Currency)
	assert.Equal(t, 12.5, hotel.Geo.Lat)
	assert.Equal(t, 77.1, hotel.Geo.Lng)

	visit := plan.Itinerary[0].Plans[0]
	assert.Equal(t, 1, plan.Itinerary[0].Day)
	assert.Equal(t, 15.0, visit.TicketPrice)
	assert.Equal(t, 90, visit.EstimatedVisitDurationMinutes)
	assert.Equal(t, 0, visit.TravelTimeFromPreviousMinutes)
}

func TestValidateModelOutputCapsHugeMinutes(t *testing.T) {
	raw := `{
	  "hotels": [{"hotelName": "A", "price": 10}],
	  "itinerary": [{"day": 1, "plans": [{"placeName": "B", "estimatedVisitDurationMinutes": 1e30, "travelTimeFromPreviousMinutes": 1e30}]}]
	}`

	plan, err := ValidateModelOutput(raw)
	require.NoError(t, err)

	visit := plan.Itinerary[0].Plans[0]
	assert.Equal(t, math.MaxInt32, visit.EstimatedVisitDurationMinutes)
	assert.Equal(t, math.MaxInt32, visit.TravelTimeFromPreviousMinutes)
}

func TestCheckPlanConforms(t *testing.T) {
	plan, err := ValidateModelOutput(validPlanJSON)
	require.NoError(t, err)

	assert.NoError(t, CheckPlanConforms(plan, 1))
	assert.ErrorIs(t, CheckPlanConforms(plan, 2), utils.ErrSchemaFailure)

	plan.Itinerary[0].Day = 3
	assert.ErrorIs(t, CheckPlanConforms(plan, 1), utils.ErrSchemaFailure)

	assert.ErrorIs(t, CheckPlanConforms(nil, 1), utils.ErrSchemaFailure)
}

func TestFallbackPlanRoundTripsThroughValidator(t *testing.T) {
	req := TripRequest{Destination: "Mumbai", Days: 3, Travellers: "with friends", Budget: "luxury", Currency: "INR"}
	plan := SynthesizeFallbackPlan(req, Coordinates{Lat: 19.07, Lon: 72.87})

	raw, err := json.Marshal(plan)
	require.NoError(t, err)

	parsed, err := ValidateModelOutput(string(raw))
	require.NoError(t, err)
	require.NoError(t, CheckPlanConforms(parsed, req.Days))
	assert.Equal(t, plan.Hotels, parsed.Hotels)
	assert.Equal(t, plan.Itinerary, parsed.Itinerary)
}
