package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sellit/internal/domain/entity"
	"sellit/internal/domain/repository"
	"sellit/internal/infrastructure/ratelimit"
	"sellit/pkg/errors"
	"sellit/pkg/logger"
)

type OfferUseCase struct {
	offerRepo   repository.OfferRepository
	listingRepo repository.ListingRepository
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	notifier    *Notifier
	rateLimiter *ratelimit.RateLimiter
}

func NewOfferUseCase(
	offerRepo repository.OfferRepository,
	listingRepo repository.ListingRepository,
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	notifier *Notifier,
	rateLimiter *ratelimit.RateLimiter,
) *OfferUseCase {
	return &OfferUseCase{
		offerRepo:   offerRepo,
		listingRepo: listingRepo,
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		rateLimiter: rateLimiter,
	}
}

// NegotiationChatID derives the single negotiation chat for an accepted
// offer. The derivation is deterministic so double acceptance cannot spawn
// a second thread.
func NegotiationChatID(offerID string) string {
	return "negotiation-" + offerID
}

type CreateOfferInput struct {
	ListingID    string `json:"listing_id"`
	OfferedPrice int64  `json:"offered_price"`
	Message      string `json:"message"`
}

func (uc *OfferUseCase) CreateOffer(ctx context.Context, buyerID string, input CreateOfferInput) (*entity.Offer, error) {
	allowed, waitTime := uc.rateLimiter.Allow(buyerID, "create_offer")
	if !allowed {
		return nil, errors.TooManyRequests("Too many offers. Please wait before making another", waitTime)
	}

	if input.OfferedPrice <= 0 {
		return nil, errors.Validation("Offered price must be positive", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID == buyerID {
		return nil, errors.BadRequest("You cannot make an offer on your own listing", nil)
	}
	if listing.Status != entity.ListingAvailable {
		return nil, errors.Conflict("Listing is no longer available", nil)
	}

	buyerName := buyerID
	buyerAvatar := ""
	if buyer, err := uc.userRepo.GetByID(ctx, buyerID); err == nil {
		buyerName = buyer.Name
		buyerAvatar = buyer.Avatar
	}

	offer := &entity.Offer{
		ListingID:    listing.ID,
		ListingTitle: listing.Title,
		ListingImage: listing.ImageURL,
		SellerID:     listing.SellerID,
		BuyerID:      buyerID,
		BuyerName:    buyerName,
		BuyerAvatar:  buyerAvatar,
		// Snapshot of the asking price at offer time; listing edits do not
		// touch it.
		OriginalPrice: listing.Price,
		OfferedPrice:  input.OfferedPrice,
		Message:       input.Message,
		Status:        entity.OfferPending,
		ReviewerID:    listing.SellerID,
	}

	if err := uc.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}

	if err := uc.listingRepo.IncrementOffers(ctx, listing.ID); err != nil {
		logger.Warn("Failed to bump offer count on %s: %v", listing.ID, err)
	}

	uc.notifier.Notify(ctx, &entity.Notification{
		RecipientID:  listing.SellerID,
		Type:         entity.NotificationOffer,
		Title:        "New Offer Received",
		Message:      fmt.Sprintf("%s offered ₦%d for %q.", buyerName, input.OfferedPrice, listing.Title),
		RelatedImage: listing.ImageURL,
		ActionLabel:  "Review Offer",
		Action:       &entity.ActionPayload{Type: entity.ActionViewOffer, ID: offer.ID},
	})

	return offer, nil
}

// AcceptOfferResult carries everything the client needs to jump into the
// negotiation chat.
type AcceptOfferResult struct {
	Offer   *entity.Offer   `json:"offer"`
	Listing *entity.Listing `json:"listing"`
	Chat    *entity.Chat    `json:"chat"`
}

// AcceptOffer is the composite transition: offer -> accepted, listing ->
// committed, and a seeded negotiation chat, as one logical unit. If a later
// step cannot complete, earlier steps are rolled back in the store and the
// whole operation fails with a conflict.
func (uc *OfferUseCase) AcceptOffer(ctx context.Context, reviewerID, offerID string) (*AcceptOfferResult, error) {
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorizeReview(offer, reviewerID); err != nil {
		return nil, err
	}
	if offer.Status != entity.OfferPending {
		return nil, errors.Conflict("Offer is no longer pending", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, offer.ListingID)
	if err != nil {
		return nil, errors.Conflict("Listing for this offer no longer exists", err)
	}
	if !listing.Status.CanTransition(entity.ListingCommitted) {
		return nil, errors.Conflict("Listing is no longer available", nil)
	}

	// Step 1: accept the offer.
	acceptedOffer := *offer
	acceptedOffer.Status = entity.OfferAccepted
	if err := uc.offerRepo.Update(ctx, &acceptedOffer); err != nil {
		return nil, errors.Conflict("Could not accept the offer", err)
	}

	// Step 2: commit the listing.
	committedListing := *listing
	committedListing.Status = entity.ListingCommitted
	if err := uc.listingRepo.Update(ctx, &committedListing); err != nil {
		uc.rollbackOffer(ctx, offer)
		return nil, errors.Conflict("Could not commit the listing", err)
	}

	// Step 3: open the negotiation chat, seeded with the acceptance and a
	// meetup prompt.
	chat, err := uc.createNegotiationChat(ctx, &acceptedOffer)
	if err != nil {
		uc.rollbackListing(ctx, listing)
		uc.rollbackOffer(ctx, offer)
		return nil, errors.Conflict("Could not open the negotiation chat", err)
	}

	uc.notifier.Notify(ctx, &entity.Notification{
		RecipientID:  uc.counterpart(&acceptedOffer, reviewerID),
		Type:         entity.NotificationPayment,
		Title:        "Offer Accepted!",
		Message:      fmt.Sprintf("Your offer of ₦%d for %q was accepted. Arrange the handover in chat.", acceptedOffer.OfferedPrice, acceptedOffer.ListingTitle),
		RelatedImage: acceptedOffer.ListingImage,
		ActionLabel:  "Open Chat",
		Action:       &entity.ActionPayload{Type: entity.ActionNavigateTab, Tab: "Messages"},
	})

	return &AcceptOfferResult{
		Offer:   &acceptedOffer,
		Listing: &committedListing,
		Chat:    chat,
	}, nil
}

func (uc *OfferUseCase) createNegotiationChat(ctx context.Context, offer *entity.Offer) (*entity.Chat, error) {
	buyerFirstName := firstName(offer.BuyerName)

	chat := &entity.Chat{
		ID:           NegotiationChatID(offer.ID),
		Participants: []string{offer.BuyerID, offer.SellerID},
		BuyerID:      offer.BuyerID,
		SellerID:     offer.SellerID,
		ListingID:    offer.ListingID,
		ListingTitle: offer.ListingTitle,
		ListingPrice: offer.OfferedPrice,
		ListingImage: offer.ListingImage,
	}

	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	seeds := []*entity.Message{
		{
			ChatID:   chat.ID,
			SenderID: offer.BuyerID,
			Content:  fmt.Sprintf("You accepted %s's offer! Chat now to arrange a meetup location.", buyerFirstName),
			Type:     "system",
		},
		{
			ChatID:   chat.ID,
			SenderID: offer.SellerID,
			Content:  fmt.Sprintf("Hi %s, I've accepted your offer. When can you meet at the student union for inspection?", buyerFirstName),
			Type:     "text",
		},
	}
	for _, seed := range seeds {
		if err := uc.chatRepo.CreateMessage(ctx, seed); err != nil {
			return nil, err
		}
	}

	return uc.chatRepo.GetByID(ctx, chat.ID)
}

func (uc *OfferUseCase) rollbackOffer(ctx context.Context, original *entity.Offer) {
	if err := uc.offerRepo.Update(ctx, original); err != nil {
		logger.Error("Rollback of offer %s failed: %v", original.ID, err)
	}
}

func (uc *OfferUseCase) rollbackListing(ctx context.Context, original *entity.Listing) {
	if err := uc.listingRepo.Update(ctx, original); err != nil {
		logger.Error("Rollback of listing %s failed: %v", original.ID, err)
	}
}

func (uc *OfferUseCase) DeclineOffer(ctx context.Context, reviewerID, offerID string) (*entity.Offer, error) {
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorizeReview(offer, reviewerID); err != nil {
		return nil, err
	}
	if offer.Status != entity.OfferPending {
		return nil, errors.Conflict("Offer is no longer pending", nil)
	}

	offer.Status = entity.OfferDeclined
	if err := uc.offerRepo.Update(ctx, offer); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, &entity.Notification{
		RecipientID: offer.BuyerID,
		Type:        entity.NotificationOffer,
		Title:       "Offer Declined",
		Message:     fmt.Sprintf("Your offer of ₦%d for %q was declined.", offer.OfferedPrice, offer.ListingTitle),
		Action:      &entity.ActionPayload{Type: entity.ActionViewListing, ID: offer.ListingID},
		ActionLabel: "View Listing",
	})

	return offer, nil
}

// SendCounterOffer closes the original offer as countered and opens a new
// pending offer at the proposed price that supersedes it. The counter is
// reviewed by the other party.
func (uc *OfferUseCase) SendCounterOffer(ctx context.Context, reviewerID, offerID string, proposedPrice int64) (*entity.Offer, error) {
	if proposedPrice <= 0 {
		return nil, errors.Validation("Proposed price must be positive", nil)
	}

	original, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorizeReview(original, reviewerID); err != nil {
		return nil, err
	}
	if original.Status != entity.OfferPending {
		return nil, errors.Conflict("Offer is no longer pending", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, original.ListingID)
	if err != nil {
		return nil, errors.Conflict("Listing for this offer no longer exists", err)
	}
	if listing.Status != entity.ListingAvailable {
		return nil, errors.Conflict("Listing is no longer available", nil)
	}

	countered := *original
	countered.Status = entity.OfferCountered
	if err := uc.offerRepo.Update(ctx, &countered); err != nil {
		return nil, err
	}

	counter := *original
	counter.ID = ""
	counter.OfferedPrice = proposedPrice
	counter.Status = entity.OfferPending
	// The proposer hands review over to the other party.
	counter.ReviewerID = uc.counterpart(original, reviewerID)
	counter.CounterOf = original.ID
	counter.Message = fmt.Sprintf("Counter-offer: ₦%d", proposedPrice)
	counter.CreatedAt = time.Time{}

	if err := uc.offerRepo.Create(ctx, &counter); err != nil {
		uc.rollbackOffer(ctx, original)
		return nil, errors.Conflict("Could not create the counter-offer", err)
	}

	uc.notifier.Notify(ctx, &entity.Notification{
		RecipientID: uc.counterpart(original, reviewerID),
		Type:        entity.NotificationOffer,
		Title:       "Counter-Offer Received",
		Message:     fmt.Sprintf("A counter of ₦%d was suggested for %q.", proposedPrice, original.ListingTitle),
		ActionLabel: "Review Offer",
		Action:      &entity.ActionPayload{Type: entity.ActionViewOffer, ID: counter.ID},
	})

	return &counter, nil
}

// authorizeReview decides who may accept, decline, or counter. Each offer
// records its reviewer: the counterpart of whoever proposed the current
// price. Review authority flips on every counter, so neither party can ever
// accept their own proposal.
func (uc *OfferUseCase) authorizeReview(offer *entity.Offer, reviewerID string) error {
	if reviewerID != offer.ReviewerID {
		return errors.Forbidden("You don't have permission to review this offer", nil)
	}
	return nil
}

func (uc *OfferUseCase) counterpart(offer *entity.Offer, userID string) string {
	if userID == offer.SellerID {
		return offer.BuyerID
	}
	return offer.SellerID
}

func (uc *OfferUseCase) GetOffer(ctx context.Context, userID, offerID string) (*entity.Offer, error) {
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if userID != offer.SellerID && userID != offer.BuyerID {
		return nil, errors.Forbidden("You don't have permission to view this offer", nil)
	}
	return offer, nil
}

func (uc *OfferUseCase) ListReceived(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Offer, int64, error) {
	return uc.offerRepo.ListBySellerID(ctx, sellerID, limit, offset)
}

func (uc *OfferUseCase) ListSent(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Offer, int64, error) {
	return uc.offerRepo.ListByBuyerID(ctx, buyerID, limit, offset)
}

func firstName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return fullName
	}
	return parts[0]
}
