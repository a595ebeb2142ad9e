package services

import (
	"fmt"
	"strings"

	"tripplanner/internal/models/response_models"
)

const (
	fallbackHotelCount  = 3
	fallbackVisitsOfDay = 3
)

var hotelChainsByBudget = map[string][]string{
	"cheap":    {"Ibis", "Holiday Inn Express", "Comfort Inn", "Travelodge", "Days Inn"},
	"moderate": {"Hilton Garden Inn", "Courtyard by Marriott", "Hampton Inn", "Hyatt Place", "Holiday Inn"},
	"luxury":   {"Taj", "Oberoi", "Marriott", "Hyatt Regency", "Four Seasons", "Ritz-Carlton", "JW Marriott"},
}

type priceRule struct {
	base      float64
	increment float64
}

var hotelPriceByBudget = map[string]priceRule{
	"cheap":    {base: 80, increment: 10},
	"moderate": {base: 150, increment: 20},
	"luxury":   {base: 300, increment: 50},
}

var attractionsByCity = map[string][]string{
	"mumbai": {
		"Gateway of India", "Marine Drive", "Elephanta Caves", "Juhu Beach",
		"Siddhivinayak Temple", "Haji Ali Dargah", "Bandra-Worli Sea Link", "Crawford Market",
	},
	"delhi": {
		"Red Fort", "India Gate", "Qutub Minar", "Lotus Temple",
		"Jama Masjid", "Humayun's Tomb", "Akshardham Temple", "Chandni Chowk",
	},
	"bangalore": {
		"Lalbagh Botanical Garden", "Cubbon Park", "Vidhana Soudha", "Bangalore Palace",
		"ISKCON Temple", "Ulsoor Lake", "Commercial Street", "Nandi Hills",
	},
}

var genericAttractions = []string{
	"City Center", "Local Market", "Historic District", "Waterfront",
	"Cultural Center", "Shopping District", "Park", "Museum",
}

var bestTimeBySlot = []string{"Morning", "Afternoon", "Evening"}

// SynthesizeFallbackPlan builds a complete plan from static tables around
// base. It is total: every request yields hotels and exactly req.Days days.
func SynthesizeFallbackPlan(req TripRequest, base Coordinates) response_models.TripPlan {
	days := req.Days
	if days < 1 {
		days = 1
	}
	budget := budgetTier(req.Budget)

	plan := response_models.TripPlan{
		Location:   req.Destination,
		Days:       days,
		Travellers: req.Travellers,
		Budget:     req.Budget,
		Currency:   req.Currency,
		Hotels:     fallbackHotels(req, budget, base),
		Itinerary:  make([]response_models.DayPlan, 0, days),
		Source:     response_models.PlanSourceFallback,
	}

	attractions := attractionsFor(req.Destination)
	for d := 1; d <= days; d++ {
		day := response_models.DayPlan{
			Day:   d,
			Plans: make([]response_models.PlaceVisit, 0, fallbackVisitsOfDay),
		}
		for slot := 0; slot < fallbackVisitsOfDay; slot++ {
			name := attractions[((d-1)*fallbackVisitsOfDay+slot)%len(attractions)]
			day.Plans = append(day.Plans, fallbackVisit(req, budget, base, name, d, slot))
		}
		plan.Itinerary = append(plan.Itinerary, day)
	}

	return plan
}

func fallbackHotels(req TripRequest, budget string, base Coordinates) []response_models.HotelOption {
	chains := hotelChainsByBudget[budget]
	price := hotelPriceByBudget[budget]

	hotels := make([]response_models.HotelOption, 0, fallbackHotelCount)
	for i := 0; i < fallbackHotelCount; i++ {
		name := fmt.Sprintf("%s %s", chains[i%len(chains)], req.Destination)
		hotels = append(hotels, response_models.HotelOption{
			HotelName: name,
			Address:   fmt.Sprintf("%d Main Street, %s", i+1, req.Destination),
			Price:     price.base + float64(i)*price.increment,
			Currency:  req.Currency,
			ImageURL:  ResolveImage(name, req.Destination, ImageKindHotel, i),
			Geo: response_models.Geo{
				Lat: base.Lat + float64(i)*0.01,
				Lng: base.Lon + float64(i)*0.01,
			},
			Rating:      4.0 - float64(i)*0.2,
			Description: fmt.Sprintf("Comfortable stay in %s for %s.", req.Destination, req.Travellers),
		})
	}
	return hotels
}

func fallbackVisit(req TripRequest, budget string, base Coordinates, name string, day, slot int) response_models.PlaceVisit {
	offset := float64(day)*0.01 + float64(slot+1)*0.003

	travel := 0
	if slot > 0 {
		travel = 15 + 5*slot
	}

	return response_models.PlaceVisit{
		PlaceName:     name,
		PlaceDetails:  fmt.Sprintf("Famous attraction in %s. A must-visit destination for tourists.", req.Destination),
		PlaceImageURL: ResolveImage(name, req.Destination, ImageKindLandmark, day*10+slot),
		Geo: response_models.Geo{
			Lat: base.Lat + offset,
			Lng: base.Lon + offset,
		},
		TicketPrice:                   ticketPrice(name, budget, slot),
		Currency:                      req.Currency,
		BestTimeToVisit:               bestTimeBySlot[min(slot, len(bestTimeBySlot)-1)],
		EstimatedVisitDurationMinutes: 60 + 30*slot,
		TravelTimeFromPreviousMinutes: travel,
	}
}

// Beaches and parks are public spaces and always free.
func ticketPrice(name, budget string, slot int) float64 {
	if strings.Contains(name, "Beach") || strings.Contains(name, "Park") {
		return 0
	}
	if budget == "cheap" {
		return float64(10 + 5*slot)
	}
	return float64(25 + 10*slot)
}

// budgetTier folds unknown budgets onto the cheapest tier.
func budgetTier(budget string) string {
	tier := strings.ToLower(strings.TrimSpace(budget))
	if _, ok := hotelChainsByBudget[tier]; ok {
		return tier
	}
	return "cheap"
}

// attractionsFor keys the city table by the text before the first comma, so
// "Delhi, India" and "delhi" share a list.
func attractionsFor(destination string) []string {
	city, _, _ := strings.Cut(destination, ",")
	if list, ok := attractionsByCity[strings.ToLower(strings.TrimSpace(city))]; ok {
		return list
	}
	return genericAttractions
}
