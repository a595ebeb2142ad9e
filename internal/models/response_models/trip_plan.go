package response_models

// PlanSourceFallback marks plans built by the rule-based synthesizer.
const PlanSourceFallback = "fallback"

type Geo struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type HotelOption struct {
	HotelName   string  `json:"hotelName"`
	Address     string  `json:"address"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	ImageURL    string  `json:"imageUrl"`
	Geo         Geo     `json:"geo"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
}

type PlaceVisit struct {
	PlaceName                     string  `json:"placeName"`
	PlaceDetails                  string  `json:"placeDetails"`
	PlaceImageURL                 string  `json:"placeImageUrl"`
	Geo                           Geo     `json:"geo"`
	TicketPrice                   float64 `json:"ticketPrice"`
	Currency                      string  `json:"currency"`
	BestTimeToVisit               string  `json:"bestTimeToVisit"`
	EstimatedVisitDurationMinutes int     `json:"estimatedVisitDurationMinutes"`
	TravelTimeFromPreviousMinutes int     `json:"travelTimeFromPreviousMinutes"`
}

type DayPlan struct {
	Day   int          `json:"day"`
	Date  *string      `json:"date"`
	Plans []PlaceVisit `json:"plans"`
}

// TripPlan is the itinerary returned to clients, whether generated by the
// model or synthesized locally.
type TripPlan struct {
	Location   string        `json:"location"`
	Days       int           `json:"days"`
	Travellers string        `json:"travellers"`
	Budget     string        `json:"budget"`
	Currency   string        `json:"currency"`
	Hotels     []HotelOption `json:"hotels"`
	Itinerary  []DayPlan     `json:"itinerary"`
	Source     string        `json:"source,omitempty"`
}
