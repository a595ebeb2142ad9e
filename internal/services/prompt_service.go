package services

import (
	"fmt"
	"strings"
)

// TripPlanSchema is the exact JSON shape the model is told to produce. The
// validator's required keys below must stay in sync with it.
const TripPlanSchema = `{
  "location": string,
  "days": integer,
  "travellers": string,
  "budget": string,
  "currency": string,
  "hotels": [ { "hotelName": string, "address": string, "price": number, "currency": string, "imageUrl": string, "geo": {"lat": number, "lng": number}, "rating": number, "description": string } ],
  "itinerary": [ { "day": integer, "date": string | null, "plans": [ { "placeName": string, "placeDetails": string, "placeImageUrl": string, "geo": {"lat": number, "lng": number}, "ticketPrice": number, "currency": string, "bestTimeToVisit": string, "estimatedVisitDurationMinutes": number, "travelTimeFromPreviousMinutes": number } ] } ]
}`

// RequiredPlanKeys are the top-level collections a model answer must carry.
var RequiredPlanKeys = []string{"hotels", "itinerary"}

var budgetGuidance = map[string]string{
	"cheap":    "budget hostels and 2-3 star hotels, mostly free or low-cost attractions",
	"moderate": "3-4 star hotels, a mix of paid and free attractions",
	"luxury":   "5 star hotels and premium experiences, price is not a concern",
}

var companionGuidance = map[string]string{
	"just me":          "a solo traveller exploring at their own pace",
	"with friends":     "a group of friends looking for adventure and nightlife",
	"with family":      "a family, prefer kid-friendly places and short transfers",
	"with colleagues":  "colleagues on a business trip, keep evenings free and places central",
	"couples":          "a couple, include romantic spots",
	"couple":           "a couple, include romantic spots",
	"religious travel": "a religious group, include major places of worship and pilgrimage sites",
}

// BuildTripPrompt renders the instruction block sent to the model. It is a
// pure function of the request.
func BuildTripPrompt(req TripRequest) string {
	var prompt strings.Builder

	fmt.Fprintf(&prompt, "You are a travel itinerary generator for %s. Generate a realistic travel plan with REAL hotels and attractions from %s.\n\n", req.Destination, req.Destination)

	prompt.WriteString("CRITICAL REQUIREMENTS:\n")
	fmt.Fprintf(&prompt, "1. Use REAL hotel names that exist in %s.\n", req.Destination)
	fmt.Fprintf(&prompt, "2. Use REAL tourist attractions and landmarks from %s.\n", req.Destination)
	fmt.Fprintf(&prompt, "3. Use realistic addresses and real coordinates in the %s area.\n", req.Destination)
	fmt.Fprintf(&prompt, "4. Set prices in %s appropriate for a %s budget", req.Currency, req.Budget)
	if guidance, ok := budgetGuidance[req.Budget]; ok {
		fmt.Fprintf(&prompt, " (%s)", guidance)
	}
	prompt.WriteString(".\n")
	fmt.Fprintf(&prompt, "5. The trip is for %s", req.Travellers)
	if guidance, ok := companionGuidance[strings.ToLower(req.Travellers)]; ok {
		fmt.Fprintf(&prompt, ": %s", guidance)
	}
	prompt.WriteString(".\n")
	prompt.WriteString("6. Return ONLY valid JSON matching the schema exactly. No markdown, no comments, no extra text.\n\n")

	fmt.Fprintf(&prompt, "Return at least 3 REAL hotel options from %s. For each hotel include: hotelName, address, price (number), currency, imageUrl, geo {lat,lng}, rating (number 0-5), description.\n\n", req.Destination)

	fmt.Fprintf(&prompt, "For each day (1..%d) produce a \"plans\" array with REAL places from %s: placeName, placeDetails (brief paragraph about the actual place), placeImageUrl, geo {lat,lng}, ticketPrice (number), currency, bestTimeToVisit, estimatedVisitDurationMinutes (number), travelTimeFromPreviousMinutes (number).\n\n", req.Days, req.Destination)

	prompt.WriteString("Inputs:\n")
	fmt.Fprintf(&prompt, "- location: %q\n", req.Destination)
	fmt.Fprintf(&prompt, "- days: %d\n", req.Days)
	fmt.Fprintf(&prompt, "- travellers: %q\n", req.Travellers)
	fmt.Fprintf(&prompt, "- budget: %q\n", req.Budget)
	fmt.Fprintf(&prompt, "- currency: %q\n\n", req.Currency)

	prompt.WriteString("Schema (must match exactly):\n")
	prompt.WriteString(TripPlanSchema)
	prompt.WriteString("\n\nHard constraints:\n")
	fmt.Fprintf(&prompt, "- \"itinerary\" has exactly %d entries with \"day\" = 1..%d (no gaps).\n", req.Days, req.Days)
	fmt.Fprintf(&prompt, "- %s must be non-empty arrays.\n", strings.Join(quoteAll(RequiredPlanKeys), " and "))
	fmt.Fprintf(&prompt, "\nReturn ONLY the JSON object with REAL places and hotels from %s.\n", req.Destination)

	return prompt.String()
}

func quoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%q", v)
	}
	return out
}
