package services

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/models/response_models"
)

func TestSynthesizeFallbackPlanDaysAreContiguous(t *testing.T) {
	for _, days := range []int{1, 2, 5, 10} {
		t.Run(fmt.Sprintf("%d days", days), func(t *testing.T) {
			req := TripRequest{Destination: "Bangalore", Days: days, Travellers: "couple", Budget: "cheap", Currency: "INR"}

			plan := SynthesizeFallbackPlan(req, Coordinates{Lat: 12.97, Lon: 77.59})

			require.Len(t, plan.Itinerary, days)
			for i, day := range plan.Itinerary {
				assert.Equal(t, i+1, day.Day)
				assert.Len(t, day.Plans, 3)
				assert.Nil(t, day.Date)
			}
			assert.Equal(t, days, plan.Days)
			assert.Equal(t, response_models.PlanSourceFallback, plan.Source)
		})
	}
}

func TestSynthesizeFallbackPlanHotelOrdering(t *testing.T) {
	for _, budget := range []string{"cheap", "moderate", "luxury"} {
		t.Run(budget, func(t *testing.T) {
			req := TripRequest{Destination: "Delhi", Days: 1, Travellers: "just me", Budget: budget, Currency: "USD"}
			plan := SynthesizeFallbackPlan(req, Coordinates{})

			require.Len(t, plan.Hotels, 3)
			for i := 1; i < len(plan.Hotels); i++ {
				assert.GreaterOrEqual(t, plan.Hotels[i].Price, plan.Hotels[i-1].Price)
				assert.Less(t, plan.Hotels[i].Rating, plan.Hotels[i-1].Rating)
			}
			assert.Equal(t, hotelChainsByBudget[budget][0]+" Delhi", plan.Hotels[0].HotelName)
			assert.Equal(t, "1 Main Street, Delhi", plan.Hotels[0].Address)
			assert.Equal(t, 4.0, plan.Hotels[0].Rating)
		})
	}
}

func TestSynthesizeFallbackPlanHotelPrices(t *testing.T) {
	tests := map[string][]float64{
		"cheap":    {80, 90, 100},
		"moderate": {150, 170, 190},
		"luxury":   {300, 350, 400},
		"unknown":  {80, 90, 100},
	}
	for budget, want := range tests {
		req := TripRequest{Destination: "Rome", Days: 1, Budget: budget, Currency: "EUR"}
		plan := SynthesizeFallbackPlan(req, Coordinates{})

		got := []float64{plan.Hotels[0].Price, plan.Hotels[1].Price, plan.Hotels[2].Price}
		assert.Equal(t, want, got, budget)
	}
}

func TestSynthesizeFallbackPlanCyclesAttractions(t *testing.T) {
	req := TripRequest{Destination: "Mumbai, India", Days: 4, Budget: "moderate", Currency: "INR"}
	plan := SynthesizeFallbackPlan(req, Coordinates{Lat: 19, Lon: 72})

	table := attractionsByCity["mumbai"]
	for d, day := range plan.Itinerary {
		for slot, visit := range day.Plans {
			assert.Equal(t, table[(d*3+slot)%len(table)], visit.PlaceName)
		}
	}
	// day 3 wraps: index 6, 7, 8 -> last two entries then the first
	assert.Equal(t, "Gateway of India", plan.Itinerary[2].Plans[2].PlaceName)
}

func TestSynthesizeFallbackPlanVisitHeuristics(t *testing.T) {
	req := TripRequest{Destination: "Springfield", Days: 3, Budget: "cheap", Currency: "USD"}
	plan := SynthesizeFallbackPlan(req, Coordinates{Lat: 10, Lon: 20})

	first := plan.Itinerary[0].Plans
	assert.Equal(t, "City Center", first[0].PlaceName)
	assert.Equal(t, []string{"Morning", "Afternoon", "Evening"},
		[]string{first[0].BestTimeToVisit, first[1].BestTimeToVisit, first[2].BestTimeToVisit})
	assert.Equal(t, []int{60, 90, 120},
		[]int{first[0].EstimatedVisitDurationMinutes, first[1].EstimatedVisitDurationMinutes, first[2].EstimatedVisitDurationMinutes})
	assert.Equal(t, []int{0, 20, 25},
		[]int{first[0].TravelTimeFromPreviousMinutes, first[1].TravelTimeFromPreviousMinutes, first[2].TravelTimeFromPreviousMinutes})
	assert.Equal(t, []float64{10, 15, 20},
		[]float64{first[0].TicketPrice, first[1].TicketPrice, first[2].TicketPrice})

	// day 3 slot 0 is "Park" in the generic table
	park := plan.Itinerary[2].Plans[0]
	assert.Equal(t, "Park", park.PlaceName)
	assert.Zero(t, park.TicketPrice)

	assert.InDelta(t, 10.013, first[0].Geo.Lat, 1e-9)
	assert.InDelta(t, 20.013, first[0].Geo.Lng, 1e-9)
}

func TestTicketPriceTiers(t *testing.T) {
	assert.Equal(t, 0.0, ticketPrice("Juhu Beach", "luxury", 2))
	assert.Equal(t, 0.0, ticketPrice("Cubbon Park", "cheap", 1))
	assert.Equal(t, 15.0, ticketPrice("Red Fort", "cheap", 1))
	assert.Equal(t, 45.0, ticketPrice("Red Fort", "moderate", 2))
}

func TestSynthesizeFallbackPlanAtUnresolvedPoint(t *testing.T) {
	req := TripRequest{Destination: "Atlantis", Days: 2, Travellers: "with family", Budget: "luxury", Currency: "USD"}
	plan := SynthesizeFallbackPlan(req, Coordinates{})

	require.NotEmpty(t, plan.Hotels)
	assert.Equal(t, response_models.Geo{}, plan.Hotels[0].Geo)
	for _, day := range plan.Itinerary {
		for _, visit := range day.Plans {
			assert.False(t, math.IsNaN(visit.Geo.Lat))
			assert.NotEmpty(t, visit.PlaceImageURL)
		}
	}
}
