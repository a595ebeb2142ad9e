package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
	"tripplanner/pkg/utils"
)

// TripRequest is the normalized input of the itinerary pipeline.
type TripRequest struct {
	Destination string `validate:"required"`
	Days        int    `validate:"min=1,max=30"`
	Travellers  string `validate:"required"`
	Budget      string `validate:"oneof=cheap moderate luxury"`
	Currency    string `validate:"iso4217"`
}

func NewTripRequest(in request_models.GenerateTripRequest) TripRequest {
	n := in.Normalized()
	return TripRequest{
		Destination: n.Location,
		Days:        n.Days,
		Travellers:  n.Travellers,
		Budget:      n.Budget,
		Currency:    n.Currency,
	}
}

// GenerationOutcome records which branch produced a plan and why.
type GenerationOutcome struct {
	Source  string // "model" or "fallback"
	Failure string // empty when accepted
	Err     error
}

const (
	outcomeSourceModel  = "model"
	defaultVisitMinutes = 60
)

type TripServiceInterface interface {
	GenerateTrip(ctx context.Context, req TripRequest) (*response_models.TripPlan, error)
}

type TripService struct {
	gateway  ModelGateway
	geocoder GeocoderServiceInterface
	validate *validator.Validate
	logger   *zap.Logger
}

func NewTripService(gateway ModelGateway, geocoder GeocoderServiceInterface, logger *zap.Logger) TripServiceInterface {
	return &TripService{
		gateway:  gateway,
		geocoder: geocoder,
		validate: validator.New(),
		logger:   logger.Named("trip"),
	}
}

// GenerateTrip always returns a plan for a valid request. The only errors are
// an invalid request and a gateway without credentials.
func (s *TripService) GenerateTrip(ctx context.Context, req TripRequest) (*response_models.TripPlan, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidTripRequest, err)
	}

	start := time.Now()
	prompt := BuildTripPrompt(req)

	plan, outcome := s.fromModel(ctx, req, prompt)
	if errors.Is(outcome.Err, utils.ErrModelNotConfigured) {
		s.logger.Error("model gateway not configured", zap.Error(outcome.Err))
		return nil, outcome.Err
	}
	if plan == nil {
		plan = s.fallback(ctx, req)
	}

	fields := []zap.Field{
		zap.String("destination", req.Destination),
		zap.Int("days", req.Days),
		zap.String("source", outcome.Source),
		zap.Duration("took", time.Since(start)),
	}
	if outcome.Err != nil {
		fields = append(fields, zap.String("failure", outcome.Failure), zap.Error(outcome.Err))
		s.logger.Warn("trip generated from fallback", fields...)
	} else {
		s.logger.Info("trip generated", fields...)
	}
	return plan, nil
}

func (s *TripService) fromModel(ctx context.Context, req TripRequest, prompt string) (*response_models.TripPlan, GenerationOutcome) {
	raw, err := s.gateway.Generate(ctx, prompt)
	if err != nil {
		return nil, failedOutcome(err)
	}

	plan, err := ValidateModelOutput(raw)
	if err == nil {
		err = CheckPlanConforms(plan, req.Days)
	}
	if err != nil {
		return nil, failedOutcome(err)
	}

	decorateAcceptedPlan(plan, req)
	return plan, GenerationOutcome{Source: outcomeSourceModel}
}

func (s *TripService) fallback(ctx context.Context, req TripRequest) *response_models.TripPlan {
	geo := s.geocoder.Geocode(ctx, req.Destination)
	if !geo.Resolved {
		s.logger.Warn("geocoding failed, using 0,0",
			zap.String("destination", req.Destination),
			zap.Error(geo.Reason))
	}
	plan := SynthesizeFallbackPlan(req, geo.Point)
	return &plan
}

func failedOutcome(err error) GenerationOutcome {
	failure := "unknown"
	switch {
	case errors.Is(err, utils.ErrModelNotConfigured):
		failure = "configuration"
	case errors.Is(err, utils.ErrTransportFailure):
		failure = "transport"
	case errors.Is(err, utils.ErrUpstreamRejection):
		failure = "upstream_rejection"
	case errors.Is(err, utils.ErrParseFailure):
		failure = "parse"
	case errors.Is(err, utils.ErrSchemaFailure):
		failure = "schema"
	}
	return GenerationOutcome{Source: response_models.PlanSourceFallback, Failure: failure, Err: err}
}

// decorateAcceptedPlan fills what the model left blank: request echo fields
// and image URLs.
func decorateAcceptedPlan(plan *response_models.TripPlan, req TripRequest) {
	plan.Source = ""
	if strings.TrimSpace(plan.Location) == "" {
		plan.Location = req.Destination
	}
	plan.Days = req.Days
	if plan.Travellers == "" {
		plan.Travellers = req.Travellers
	}
	if plan.Budget == "" {
		plan.Budget = req.Budget
	}
	if plan.Currency == "" {
		plan.Currency = req.Currency
	}

	for i := range plan.Hotels {
		h := &plan.Hotels[i]
		if h.Currency == "" {
			h.Currency = plan.Currency
		}
		if strings.TrimSpace(h.ImageURL) == "" {
			h.ImageURL = ResolveImage(h.HotelName, plan.Location, ImageKindHotel, i)
		}
	}
	for d := range plan.Itinerary {
		for slot := range plan.Itinerary[d].Plans {
			p := &plan.Itinerary[d].Plans[slot]
			if p.Currency == "" {
				p.Currency = plan.Currency
			}
			if p.EstimatedVisitDurationMinutes <= 0 {
				p.EstimatedVisitDurationMinutes = defaultVisitMinutes
			}
			if strings.TrimSpace(p.PlaceImageURL) == "" {
				p.PlaceImageURL = ResolveImage(p.PlaceName, plan.Location, ImageKindLandmark, plan.Itinerary[d].Day*10+slot)
			}
		}
	}
}
