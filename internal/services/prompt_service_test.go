package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTripPromptEmbedsInputsAndSchema(t *testing.T) {
	req := TripRequest{Destination: "Delhi, India", Days: 4, Travellers: "with family", Budget: "moderate", Currency: "INR"}

	prompt := BuildTripPrompt(req)

	assert.Contains(t, prompt, TripPlanSchema)
	assert.Contains(t, prompt, `- location: "Delhi, India"`)
	assert.Contains(t, prompt, "- days: 4")
	assert.Contains(t, prompt, `- currency: "INR"`)
	assert.Contains(t, prompt, "exactly 4 entries")
	assert.Contains(t, prompt, budgetGuidance["moderate"])
	assert.Contains(t, prompt, companionGuidance["with family"])
	assert.Contains(t, prompt, `"hotels" and "itinerary" must be non-empty arrays`)
}

func TestBuildTripPromptIsDeterministic(t *testing.T) {
	req := TripRequest{Destination: "Lisbon", Days: 2, Travellers: "just me", Budget: "cheap", Currency: "EUR"}
	assert.Equal(t, BuildTripPrompt(req), BuildTripPrompt(req))
}

func TestBuildTripPromptUnknownLabelsStillRender(t *testing.T) {
	req := TripRequest{Destination: "Oslo", Days: 1, Travellers: "robots", Budget: "galactic", Currency: "NOK"}

	prompt := BuildTripPrompt(req)

	assert.Contains(t, prompt, "appropriate for a galactic budget.\n")
	assert.Contains(t, prompt, "The trip is for robots.\n")
}
