package store

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sellit/internal/domain/entity"
	"sellit/internal/domain/repository"
	"sellit/pkg/errors"
)

type listingStore struct{ *EntityStore }

func cloneListing(l *entity.Listing) *entity.Listing {
	clone := *l
	if l.BoostedUntil != nil {
		t := *l.BoostedUntil
		clone.BoostedUntil = &t
	}
	return &clone
}

func sortBoostedFirst(listings []*entity.Listing) {
	sort.Slice(listings, func(i, j int) bool {
		if listings[i].IsBoosted != listings[j].IsBoosted {
			return listings[i].IsBoosted
		}
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
}

func (r listingStore) Create(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	if _, exists := r.listings[listing.ID]; exists {
		return errors.Conflict("Listing already exists", nil)
	}

	now := time.Now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	r.listings[listing.ID] = cloneListing(listing)
	r.persist(ctx, CollectionListings, listing.ID, listing)
	return nil
}

func (r listingStore) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	return cloneListing(listing), nil
}

func (r listingStore) Update(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[listing.ID]; !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.UpdatedAt = time.Now()
	r.listings[listing.ID] = cloneListing(listing)
	r.persist(ctx, CollectionListings, listing.ID, listing)
	return nil
}

func (r listingStore) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[id]; !ok {
		return errors.NotFound("Listing", nil)
	}
	delete(r.listings, id)
	r.unpersist(ctx, CollectionListings, id)
	return nil
}

func (r listingStore) List(ctx context.Context, filter repository.ListingFilter, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.ToLower(filter.Query)
	var matched []*entity.Listing
	for _, l := range r.listings {
		if filter.Category != "" && l.Category != filter.Category {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(l.Title), query) {
			continue
		}
		matched = append(matched, cloneListing(l))
	}

	sortBoostedFirst(matched)
	total := int64(len(matched))
	return paginate(matched, limit, offset), total, nil
}

func (r listingStore) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entity.Listing
	for _, l := range r.listings {
		if l.SellerID == sellerID {
			matched = append(matched, cloneListing(l))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	return paginate(matched, limit, offset), total, nil
}

func (r listingStore) ListBoostedBefore(ctx context.Context, cutoff time.Time) ([]*entity.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entity.Listing
	for _, l := range r.listings {
		if l.IsBoosted && l.BoostedUntil != nil && l.BoostedUntil.Before(cutoff) {
			matched = append(matched, cloneListing(l))
		}
	}
	return matched, nil
}

func (r listingStore) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.ViewCount++
	listing.UpdatedAt = time.Now()
	r.persist(ctx, CollectionListings, id, listing)
	return nil
}

func (r listingStore) IncrementOffers(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.OfferCount++
	listing.UpdatedAt = time.Now()
	r.persist(ctx, CollectionListings, id, listing)
	return nil
}
