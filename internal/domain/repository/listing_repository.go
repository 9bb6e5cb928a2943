package repository

import (
	"context"
	"time"

	"sellit/internal/domain/entity"
)

// ListingFilter narrows List results. Zero values mean "no constraint".
type ListingFilter struct {
	Category string
	Status   entity.ListingStatus
	Query    string // case-insensitive title match
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id string) error
	// List returns listings boosted-first then newest, filtered and paginated.
	List(ctx context.Context, filter ListingFilter, limit, offset int) ([]*entity.Listing, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Listing, int64, error)
	// ListBoostedBefore returns boosted listings whose boost window closed
	// before the given cutoff, for the expiry sweep.
	ListBoostedBefore(ctx context.Context, cutoff time.Time) ([]*entity.Listing, error)
	IncrementViews(ctx context.Context, id string) error
	IncrementOffers(ctx context.Context, id string) error
}
