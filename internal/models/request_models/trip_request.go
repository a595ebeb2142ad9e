package request_models

import (
	"strconv"
	"strings"
)

// GenerateTripRequest is the body of POST /api/generate-trip. Clients may send
// human labels directly or the numeric option ids of the trip form.
type GenerateTripRequest struct {
	Location     string `json:"location" binding:"required"`
	Days         int    `json:"days" binding:"omitempty,min=1,max=30"`
	Travellers   string `json:"travellers"`
	Budget       string `json:"budget"`
	Currency     string `json:"currency"`
	BudgetID     *int   `json:"budgetId,omitempty"`
	CompanionsID *int   `json:"companionsId,omitempty"`
}

const (
	DefaultTripDays   = 3
	DefaultTravellers = "couple"
	DefaultBudget     = "cheap"
	DefaultCurrency   = "USD"
)

var budgetLabels = map[int]string{
	1: "Cheap",
	2: "Moderate",
	3: "Luxury",
}

var companionLabels = map[int]string{
	1: "Just Me",
	2: "With Friends",
	3: "With Family",
	4: "With Colleagues",
	5: "Couples",
	6: "Religious travel",
}

// BudgetLabel maps a budget option id to its label; unknown ids pass through as text.
func BudgetLabel(id int) string {
	if label, ok := budgetLabels[id]; ok {
		return label
	}
	return strconv.Itoa(id)
}

// CompanionsLabel maps a companion option id to its label; unknown ids pass through as text.
func CompanionsLabel(id int) string {
	if label, ok := companionLabels[id]; ok {
		return label
	}
	return strconv.Itoa(id)
}

// Normalized resolves ids to labels and fills the defaults for omitted fields.
func (r GenerateTripRequest) Normalized() GenerateTripRequest {
	out := r
	out.Location = strings.TrimSpace(out.Location)
	if out.BudgetID != nil {
		out.Budget = BudgetLabel(*out.BudgetID)
	}
	if out.CompanionsID != nil {
		out.Travellers = CompanionsLabel(*out.CompanionsID)
	}

	out.Budget = strings.ToLower(strings.TrimSpace(out.Budget))
	out.Travellers = strings.ToLower(strings.TrimSpace(out.Travellers))
	out.Currency = strings.ToUpper(strings.TrimSpace(out.Currency))

	if out.Days == 0 {
		out.Days = DefaultTripDays
	}
	if out.Travellers == "" {
		out.Travellers = DefaultTravellers
	}
	if out.Budget == "" {
		out.Budget = DefaultBudget
	}
	if out.Currency == "" {
		out.Currency = DefaultCurrency
	}
	return out
}
