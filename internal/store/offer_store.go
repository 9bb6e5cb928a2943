package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"sellit/internal/domain/entity"
	"sellit/pkg/errors"
)

type offerStore struct{ *EntityStore }

func cloneOffer(o *entity.Offer) *entity.Offer {
	clone := *o
	return &clone
}

func (r offerStore) Create(ctx context.Context, offer *entity.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}
	if _, exists := r.offers[offer.ID]; exists {
		return errors.Conflict("Offer already exists", nil)
	}

	now := time.Now()
	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = now
	}
	offer.UpdatedAt = now

	r.offers[offer.ID] = cloneOffer(offer)
	r.persist(ctx, CollectionOffers, offer.ID, offer)
	return nil
}

func (r offerStore) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offer, ok := r.offers[id]
	if !ok {
		return nil, errors.NotFound("Offer", nil)
	}
	return cloneOffer(offer), nil
}

func (r offerStore) Update(ctx context.Context, offer *entity.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.offers[offer.ID]; !ok {
		return errors.NotFound("Offer", nil)
	}
	offer.UpdatedAt = time.Now()
	r.offers[offer.ID] = cloneOffer(offer)
	r.persist(ctx, CollectionOffers, offer.ID, offer)
	return nil
}

func (r offerStore) ListByListing(ctx context.Context, listingID string) ([]*entity.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entity.Offer
	for _, o := range r.offers {
		if o.ListingID == listingID {
			matched = append(matched, cloneOffer(o))
		}
	}
	sortOffersNewestFirst(matched)
	return matched, nil
}

func (r offerStore) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Offer, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entity.Offer
	for _, o := range r.offers {
		if o.SellerID == sellerID {
			matched = append(matched, cloneOffer(o))
		}
	}
	sortOffersNewestFirst(matched)
	total := int64(len(matched))
	return paginate(matched, limit, offset), total, nil
}

func (r offerStore) ListByBuyerID(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Offer, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entity.Offer
	for _, o := range r.offers {
		if o.BuyerID == buyerID {
			matched = append(matched, cloneOffer(o))
		}
	}
	sortOffersNewestFirst(matched)
	total := int64(len(matched))
	return paginate(matched, limit, offset), total, nil
}

func sortOffersNewestFirst(offers []*entity.Offer) {
	sort.Slice(offers, func(i, j int) bool {
		return offers[i].CreatedAt.After(offers[j].CreatedAt)
	})
}
