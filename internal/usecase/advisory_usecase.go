package usecase

import (
	"context"

	"sellit/internal/domain/service"
	"sellit/internal/infrastructure/ratelimit"
	"sellit/pkg/errors"
)

// AdvisoryUseCase fronts the AI advisor with rate limiting and input checks.
// The advisor may be nil when no model is configured; callers then get a
// service-unavailable error instead of a panic.
type AdvisoryUseCase struct {
	advisor     service.AdvisoryService
	rateLimiter *ratelimit.RateLimiter
}

func NewAdvisoryUseCase(advisor service.AdvisoryService, rateLimiter *ratelimit.RateLimiter) *AdvisoryUseCase {
	return &AdvisoryUseCase{
		advisor:     advisor,
		rateLimiter: rateLimiter,
	}
}

type SuggestListingInput struct {
	Title     string `json:"title" validate:"required"`
	Condition string `json:"condition" validate:"required"`
	Category  string `json:"category" validate:"required"`
}

func (uc *AdvisoryUseCase) SuggestListing(ctx context.Context, userID string, input SuggestListingInput) (*service.ListingSuggestion, error) {
	if uc.advisor == nil {
		return nil, errors.Unavailable("AI suggestions are not available right now", nil)
	}
	allowed, waitTime := uc.rateLimiter.Allow(userID, "ai_request")
	if !allowed {
		return nil, errors.TooManyRequests("Too many AI requests. Please wait", waitTime)
	}
	if input.Title == "" {
		return nil, errors.Validation("Title is required", nil)
	}
	return uc.advisor.SuggestListing(ctx, input.Title, input.Condition, input.Category)
}

type AdviseInput struct {
	Query   string               `json:"query" validate:"required"`
	History []service.AdviceTurn `json:"history"`
}

func (uc *AdvisoryUseCase) Advise(ctx context.Context, userID string, input AdviseInput) (*service.Advice, error) {
	if uc.advisor == nil {
		return nil, errors.Unavailable("The assistant is not available right now", nil)
	}
	allowed, waitTime := uc.rateLimiter.Allow(userID, "ai_request")
	if !allowed {
		return nil, errors.TooManyRequests("Too many AI requests. Please wait", waitTime)
	}
	if input.Query == "" {
		return nil, errors.Validation("Query is required", nil)
	}
	return uc.advisor.Advise(ctx, input.Query, input.History)
}
