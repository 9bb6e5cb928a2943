package repository

import (
	"context"

	"sellit/internal/domain/entity"
)

// SavedListingRepository holds each user's saved-set.
type SavedListingRepository interface {
	// Toggle adds or removes the listing and reports the resulting state.
	Toggle(ctx context.Context, userID, listingID string) (saved bool, err error)
	ListByUser(ctx context.Context, userID string) ([]string, error)
	// ListSavers returns the ids of every user who saved the listing.
	ListSavers(ctx context.Context, listingID string) ([]string, error)
}

// ViewHistoryRepository keeps at most one view record per listing per viewer.
type ViewHistoryRepository interface {
	// Upsert inserts the record or, if one exists for the listing, refreshes
	// its timestamp in place.
	Upsert(ctx context.Context, userID string, record *entity.ViewRecord) error
	ListByUser(ctx context.Context, userID string) ([]*entity.ViewRecord, error)
	// ListViewers returns the ids of every user with a view record for the
	// listing.
	ListViewers(ctx context.Context, listingID string) ([]string, error)
}
