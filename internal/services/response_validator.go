package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"tripplanner/internal/models/response_models"
	"tripplanner/pkg/utils"
)

// ValidateModelOutput parses raw model text as a TripPlan. It tries the full
// text first, then the slice between the first '{' and the last '}'. A payload
// that parses but lacks non-empty "hotels" and "itinerary" arrays is rejected.
func ValidateModelOutput(raw string) (*response_models.TripPlan, error) {
	body, fields, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	for _, key := range RequiredPlanKeys {
		if err := requireNonEmptyArray(fields, key); err != nil {
			return nil, err
		}
	}

	var wire wirePlan
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrSchemaFailure, err)
	}
	return wire.normalize(), nil
}

// CheckPlanConforms rejects plans whose itinerary is not exactly days 1..n.
func CheckPlanConforms(plan *response_models.TripPlan, days int) error {
	if plan == nil {
		return fmt.Errorf("%w: empty plan", utils.ErrSchemaFailure)
	}
	if len(plan.Hotels) == 0 {
		return fmt.Errorf("%w: no hotels", utils.ErrSchemaFailure)
	}
	if len(plan.Itinerary) != days {
		return fmt.Errorf("%w: itinerary has %d days, expected %d", utils.ErrSchemaFailure, len(plan.Itinerary), days)
	}
	for i, day := range plan.Itinerary {
		if day.Day != i+1 {
			return fmt.Errorf("%w: itinerary entry %d has day %d", utils.ErrSchemaFailure, i, day.Day)
		}
	}
	return nil
}

func extractJSONObject(raw string) ([]byte, map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage

	body := []byte(strings.TrimSpace(raw))
	if err := json.Unmarshal(body, &fields); err == nil && fields != nil {
		return body, fields, nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return nil, nil, fmt.Errorf("%w: no JSON object found", utils.ErrParseFailure)
	}

	body = []byte(raw[start : end+1])
	fields = nil
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, nil, fmt.Errorf("%w: embedded object does not parse", utils.ErrParseFailure)
	}
	return body, fields, nil
}

func requireNonEmptyArray(fields map[string]json.RawMessage, key string) error {
	value, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: missing %q", utils.ErrSchemaFailure, key)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(value, &items); err != nil || items == nil {
		return fmt.Errorf("%w: %q is not an array", utils.ErrSchemaFailure, key)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: %q is empty", utils.ErrSchemaFailure, key)
	}
	return nil
}

// flexNumber is the single place where the numeric shapes models produce are
// mapped onto a float: a JSON number, a numeric string ("$120", "4.5"), an
// object carrying amount/value/price, or null.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = flexNumber(parseLooseNumber(s))
		return nil
	case '{':
		var obj struct {
			Amount *flexNumber `json:"amount"`
			Value  *flexNumber `json:"value"`
			Price  *flexNumber `json:"price"`
			Min    *flexNumber `json:"min"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		for _, candidate := range []*flexNumber{obj.Amount, obj.Value, obj.Price, obj.Min} {
			if candidate != nil {
				*n = *candidate
				return nil
			}
		}
		*n = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = flexNumber(f)
	return nil
}

func (n flexNumber) finite() float64 {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func (n flexNumber) nonNegative() float64 {
	return math.Max(0, n.finite())
}

// minutes is capped so huge model values cannot overflow into negatives.
func (n flexNumber) minutes() int {
	return int(math.Round(math.Min(n.nonNegative(), math.MaxInt32)))
}

// parseLooseNumber keeps the first run of digits, dots and a leading minus.
func parseLooseNumber(s string) float64 {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		case r == ',':
			// thousands separator
		default:
			if b.Len() > 0 {
				f, _ := strconv.ParseFloat(b.String(), 64)
				return f
			}
		}
	}
	f, _ := strconv.ParseFloat(b.String(), 64)
	return f
}

type wireGeo struct {
	Lat flexNumber  `json:"lat"`
	Lng *flexNumber `json:"lng"`
	Lon *flexNumber `json:"lon"`
}

func (g *wireGeo) normalize() response_models.Geo {
	if g == nil {
		return response_models.Geo{}
	}
	lng := g.Lng
	if lng == nil {
		lng = g.Lon
	}
	out := response_models.Geo{Lat: g.Lat.finite()}
	if lng != nil {
		out.Lng = lng.finite()
	}
	return out
}

type wireHotel struct {
	HotelName   string     `json:"hotelName"`
	Address     string     `json:"address"`
	Price       flexNumber `json:"price"`
	Currency    string     `json:"currency"`
	ImageURL    string     `json:"imageUrl"`
	Geo         *wireGeo   `json:"geo"`
	Rating      flexNumber `json:"rating"`
	Description string     `json:"description"`
}

type wireVisit struct {
	PlaceName                     string     `json:"placeName"`
	PlaceDetails                  string     `json:"placeDetails"`
	PlaceImageURL                 string     `json:"placeImageUrl"`
	Geo                           *wireGeo   `json:"geo"`
	TicketPrice                   flexNumber `json:"ticketPrice"`
	Currency                      string     `json:"currency"`
	BestTimeToVisit               string     `json:"bestTimeToVisit"`
	EstimatedVisitDurationMinutes flexNumber `json:"estimatedVisitDurationMinutes"`
	TravelTimeFromPreviousMinutes flexNumber `json:"travelTimeFromPreviousMinutes"`
}

type wireDay struct {
	Day   flexNumber  `json:"day"`
	Date  *string     `json:"date"`
	Plans []wireVisit `json:"plans"`
}

type wirePlan struct {
	Location   string      `json:"location"`
	Days       flexNumber  `json:"days"`
	Travellers string      `json:"travellers"`
	Budget     string      `json:"budget"`
	Currency   string      `json:"currency"`
	Hotels     []wireHotel `json:"hotels"`
	Itinerary  []wireDay   `json:"itinerary"`
}

func (w wirePlan) normalize() *response_models.TripPlan {
	plan := &response_models.TripPlan{
		Location:   w.Location,
		Days:       int(math.Round(w.Days.finite())),
		Travellers: w.Travellers,
		Budget:     w.Budget,
		Currency:   w.Currency,
		Hotels:     make([]response_models.HotelOption, 0, len(w.Hotels)),
		Itinerary:  make([]response_models.DayPlan, 0, len(w.Itinerary)),
	}

	for _, h := range w.Hotels {
		plan.Hotels = append(plan.Hotels, response_models.HotelOption{
			HotelName:   h.HotelName,
			Address:     h.Address,
			Price:       h.Price.nonNegative(),
			Currency:    firstNonEmpty(h.Currency, w.Currency),
			ImageURL:    h.ImageURL,
			Geo:         h.Geo.normalize(),
			Rating:      math.Min(5, h.Rating.nonNegative()),
			Description: h.Description,
		})
	}

	for _, d := range w.Itinerary {
		day := response_models.DayPlan{
			Day:   int(math.Round(d.Day.finite())),
			Date:  d.Date,
			Plans: make([]response_models.PlaceVisit, 0, len(d.Plans)),
		}
		for _, p := range d.Plans {
			day.Plans = append(day.Plans, response_models.PlaceVisit{
				PlaceName:                     p.PlaceName,
				PlaceDetails:                  p.PlaceDetails,
				PlaceImageURL:                 p.PlaceImageURL,
				Geo:                           p.Geo.normalize(),
				TicketPrice:                   p.TicketPrice.nonNegative(),
				Currency:                      firstNonEmpty(p.Currency, w.Currency),
				BestTimeToVisit:               p.BestTimeToVisit,
				EstimatedVisitDurationMinutes: p.EstimatedVisitDurationMinutes.minutes(),
				TravelTimeFromPreviousMinutes: p.TravelTimeFromPreviousMinutes.minutes(),
			})
		}
		plan.Itinerary = append(plan.Itinerary, day)
	}

	return plan
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
