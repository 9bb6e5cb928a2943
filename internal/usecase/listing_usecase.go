package usecase

import (
	"context"
	"fmt"
	"time"

	"sellit/internal/domain/entity"
	"sellit/internal/domain/repository"
	"sellit/pkg/errors"
	"sellit/pkg/logger"
)

type ListingUseCase struct {
	listingRepo   repository.ListingRepository
	savedRepo     repository.SavedListingRepository
	viewRepo      repository.ViewHistoryRepository
	offerRepo     repository.OfferRepository
	userRepo      repository.UserRepository
	notifier      *Notifier
	boostDuration time.Duration
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	savedRepo repository.SavedListingRepository,
	viewRepo repository.ViewHistoryRepository,
	offerRepo repository.OfferRepository,
	userRepo repository.UserRepository,
	notifier *Notifier,
	boostDuration time.Duration,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo:   listingRepo,
		savedRepo:     savedRepo,
		viewRepo:      viewRepo,
		offerRepo:     offerRepo,
		userRepo:      userRepo,
		notifier:      notifier,
		boostDuration: boostDuration,
	}
}

type CreateListingInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Category     string `json:"category"`
	Location     string `json:"location"`
	ImageURL     string `json:"image_url"`
	IsUrgent     bool   `json:"is_urgent"`
	IsNegotiable bool   `json:"is_negotiable"`
	Boost        bool   `json:"boost"`
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, sellerID string, input CreateListingInput) (*entity.Listing, error) {
	if input.Title == "" {
		return nil, errors.Validation("Title is required", nil)
	}
	if input.Price <= 0 {
		return nil, errors.Validation("Price must be positive", nil)
	}

	sellerName := sellerID
	if seller, err := uc.userRepo.GetByID(ctx, sellerID); err == nil {
		sellerName = seller.Name
	}

	listing := &entity.Listing{
		SellerID:     sellerID,
		SellerName:   sellerName,
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Category:     input.Category,
		Location:     input.Location,
		ImageURL:     input.ImageURL,
		IsUrgent:     input.IsUrgent,
		IsNegotiable: input.IsNegotiable,
		Status:       entity.ListingAvailable,
		ViewCount:    0,
		OfferCount:   0,
	}

	if input.Boost {
		until := time.Now().Add(uc.boostDuration)
		listing.IsBoosted = true
		listing.BoostedUntil = &until
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// GetListing returns the listing and, for an authenticated viewer who is not
// the seller, records the view.
func (uc *ListingUseCase) GetListing(ctx context.Context, id, viewerID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewerID != "" && viewerID != listing.SellerID {
		if err := uc.RecordView(ctx, id, viewerID); err != nil {
			logger.Warn("Failed to record view of %s by %s: %v", id, viewerID, err)
		} else {
			listing.ViewCount++
		}
	}

	return listing, nil
}

// RecordView bumps the listing's view counter and upserts the viewer's
// history record. Every call counts a view; the history keeps at most one
// record per listing per viewer.
func (uc *ListingUseCase) RecordView(ctx context.Context, listingID, viewerID string) error {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}

	if err := uc.listingRepo.IncrementViews(ctx, listingID); err != nil {
		return err
	}

	return uc.viewRepo.Upsert(ctx, viewerID, &entity.ViewRecord{
		ListingID:       listingID,
		LastViewedPrice: listing.Price,
		ViewedAt:        time.Now(),
	})
}

// ToggleSave flips the listing in the viewer's saved-set and reports the
// resulting state. The listing is not required to exist.
func (uc *ListingUseCase) ToggleSave(ctx context.Context, viewerID, listingID string) (bool, error) {
	return uc.savedRepo.Toggle(ctx, viewerID, listingID)
}

type UpdateListingInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Category     string `json:"category"`
	Location     string `json:"location"`
	ImageURL     string `json:"image_url"`
	IsUrgent     bool   `json:"is_urgent"`
	IsNegotiable bool   `json:"is_negotiable"`
}

// EditListing replaces the listing's editable fields. The seller, status,
// counters and boost window survive edits. A price cut alerts everyone who
// saved or viewed the listing.
func (uc *ListingUseCase) EditListing(ctx context.Context, id, sellerID string, input UpdateListingInput) (*entity.Listing, error) {
	if input.Title == "" {
		return nil, errors.Validation("Title is required", nil)
	}
	if input.Price <= 0 {
		return nil, errors.Validation("Price must be positive", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != sellerID {
		return nil, errors.Forbidden("You don't have permission to edit this listing", nil)
	}

	previousPrice := listing.Price

	listing.Title = input.Title
	listing.Description = input.Description
	listing.Price = input.Price
	listing.Category = input.Category
	listing.Location = input.Location
	listing.ImageURL = input.ImageURL
	listing.IsUrgent = input.IsUrgent
	listing.IsNegotiable = input.IsNegotiable

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	if input.Price < previousPrice {
		uc.notifyPriceDrop(ctx, listing, previousPrice)
	}

	return listing, nil
}

func (uc *ListingUseCase) notifyPriceDrop(ctx context.Context, listing *entity.Listing, previousPrice int64) {
	recipients := make(map[string]bool)
	if savers, err := uc.savedRepo.ListSavers(ctx, listing.ID); err == nil {
		for _, id := range savers {
			recipients[id] = true
		}
	}
	if viewers, err := uc.viewRepo.ListViewers(ctx, listing.ID); err == nil {
		for _, id := range viewers {
			recipients[id] = true
		}
	}
	delete(recipients, listing.SellerID)

	for recipientID := range recipients {
		uc.notifier.Notify(ctx, &entity.Notification{
			RecipientID:  recipientID,
			Type:         entity.NotificationPriceDrop,
			Title:        "Price Drop Alert!",
			Message:      fmt.Sprintf("%q dropped from ₦%d to ₦%d.", listing.Title, previousPrice, listing.Price),
			RelatedImage: listing.ImageURL,
			ActionLabel:  "View Item",
			Action:       &entity.ActionPayload{Type: entity.ActionViewListing, ID: listing.ID},
		})
	}
}

// DeleteListing removes the listing outright. Removal is blocked while open
// offers still reference it.
func (uc *ListingUseCase) DeleteListing(ctx context.Context, id, sellerID string) error {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if listing.SellerID != sellerID {
		return errors.Forbidden("You don't have permission to delete this listing", nil)
	}

	offers, err := uc.offerRepo.ListByListing(ctx, id)
	if err != nil {
		return err
	}
	for _, offer := range offers {
		if offer.Open() {
			return errors.Conflict("Listing has open offers and cannot be deleted", nil)
		}
	}

	return uc.listingRepo.Delete(ctx, id)
}

// MarkSold finalizes the listing from any earlier status. There is no
// reversal; marking an already sold listing is a no-op.
func (uc *ListingUseCase) MarkSold(ctx context.Context, id, sellerID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != sellerID {
		return nil, errors.Forbidden("You don't have permission to update this listing", nil)
	}

	if listing.Status == entity.ListingSold {
		return listing, nil
	}

	listing.Status = entity.ListingSold
	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// BoostListing gives the listing priority placement for the boost window.
// Idempotent; boosting again refreshes the window.
func (uc *ListingUseCase) BoostListing(ctx context.Context, id, sellerID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != sellerID {
		return nil, errors.Forbidden("You don't have permission to boost this listing", nil)
	}

	until := time.Now().Add(uc.boostDuration)
	listing.IsBoosted = true
	listing.BoostedUntil = &until

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (uc *ListingUseCase) ListListings(ctx context.Context, category, status, query string, page, limit int) ([]*entity.Listing, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	filter := repository.ListingFilter{
		Category: category,
		Status:   entity.ListingStatus(status),
		Query:    query,
	}
	if status == "" {
		filter.Status = entity.ListingAvailable
	}

	return uc.listingRepo.List(ctx, filter, limit, offset)
}

func (uc *ListingUseCase) ListMyListings(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Listing, int64, error) {
	return uc.listingRepo.ListBySellerID(ctx, sellerID, limit, offset)
}

func (uc *ListingUseCase) ListSaved(ctx context.Context, userID string) ([]*entity.Listing, error) {
	ids, err := uc.savedRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	listings := make([]*entity.Listing, 0, len(ids))
	for _, id := range ids {
		listing, err := uc.listingRepo.GetByID(ctx, id)
		if err != nil {
			// Saved ids may outlive their listings.
			continue
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// RecentlyViewedItem pairs a history record with the listing's live state.
type RecentlyViewedItem struct {
	Listing         *entity.Listing `json:"listing"`
	LastViewedPrice int64           `json:"last_viewed_price"`
	ViewedAt        time.Time       `json:"viewed_at"`
	PriceDropped    bool            `json:"price_dropped"`
}

func (uc *ListingUseCase) RecentlyViewed(ctx context.Context, userID string) ([]*RecentlyViewedItem, error) {
	records, err := uc.viewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*RecentlyViewedItem, 0, len(records))
	for _, record := range records {
		listing, err := uc.listingRepo.GetByID(ctx, record.ListingID)
		if err != nil {
			continue
		}
		items = append(items, &RecentlyViewedItem{
			Listing:         listing,
			LastViewedPrice: record.LastViewedPrice,
			ViewedAt:        record.ViewedAt,
			PriceDropped:    listing.Price < record.LastViewedPrice,
		})
	}
	return items, nil
}

// StartBoostSweeper clears expired boosts on a fixed interval until the
// context is cancelled.
func (uc *ListingUseCase) StartBoostSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				uc.sweepExpiredBoosts(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (uc *ListingUseCase) sweepExpiredBoosts(ctx context.Context) {
	expired, err := uc.listingRepo.ListBoostedBefore(ctx, time.Now())
	if err != nil {
		logger.Error("Boost sweep failed: %v", err)
		return
	}

	for _, listing := range expired {
		listing.IsBoosted = false
		listing.BoostedUntil = nil
		if err := uc.listingRepo.Update(ctx, listing); err != nil {
			logger.Warn("Failed to clear expired boost on %s: %v", listing.ID, err)
			continue
		}
		logger.Info("Boost expired for listing %s", listing.ID)
	}
}
