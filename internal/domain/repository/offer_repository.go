package repository

import (
	"context"

	"sellit/internal/domain/entity"
)

type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	GetByID(ctx context.Context, id string) (*entity.Offer, error)
	Update(ctx context.Context, offer *entity.Offer) error
	ListByListing(ctx context.Context, listingID string) ([]*entity.Offer, error)
	ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Offer, int64, error)
	ListByBuyerID(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Offer, int64, error)
}
