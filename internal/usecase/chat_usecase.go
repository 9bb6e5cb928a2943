package usecase

import (
	"context"

	"sellit/internal/domain/entity"
	"sellit/internal/domain/repository"
	"sellit/internal/infrastructure/ratelimit"
	"sellit/internal/infrastructure/websocket"
	"sellit/pkg/errors"
)

type ChatUseCase struct {
	chatRepo      repository.ChatRepository
	listingRepo   repository.ListingRepository
	broadcastRepo repository.BroadcastRepository
	userRepo      repository.UserRepository
	wsManager     *websocket.Manager
	rateLimiter   *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	listingRepo repository.ListingRepository,
	broadcastRepo repository.BroadcastRepository,
	userRepo repository.UserRepository,
	wsManager *websocket.Manager,
	rateLimiter *ratelimit.RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:      chatRepo,
		listingRepo:   listingRepo,
		broadcastRepo: broadcastRepo,
		userRepo:      userRepo,
		wsManager:     wsManager,
		rateLimiter:   rateLimiter,
	}
}

// StartOrResumeChat resolves the chat for (buyer, seller, listing), creating
// it only if no thread with that identity exists yet. Repeated calls always
// land in the same thread.
func (uc *ChatUseCase) StartOrResumeChat(ctx context.Context, buyerID, listingID string) (*entity.Chat, error) {
	allowed, waitTime := uc.rateLimiter.Allow(buyerID, "start_chat")
	if !allowed {
		return nil, errors.TooManyRequests("Too many new chats. Please wait", waitTime)
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID == buyerID {
		return nil, errors.BadRequest("You cannot start a chat about your own listing", nil)
	}

	if existing, err := uc.chatRepo.GetByKey(ctx, buyerID, listing.SellerID, listingID); err == nil {
		return existing, nil
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	chat := &entity.Chat{
		Participants: []string{buyerID, listing.SellerID},
		BuyerID:      buyerID,
		SellerID:     listing.SellerID,
		ListingID:    listing.ID,
		ListingTitle: listing.Title,
		ListingPrice: listing.Price,
		ListingImage: listing.ImageURL,
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// RespondToBroadcast opens (or resumes) a thread between a responding seller
// and the broadcast author. The broadcast stands in for a listing, so the
// thread is keyed by a pseudo-listing derived from the broadcast.
func (uc *ChatUseCase) RespondToBroadcast(ctx context.Context, responderID, broadcastID string) (*entity.Chat, error) {
	allowed, waitTime := uc.rateLimiter.Allow(responderID, "start_chat")
	if !allowed {
		return nil, errors.TooManyRequests("Too many new chats. Please wait", waitTime)
	}

	broadcast, err := uc.broadcastRepo.GetByID(ctx, broadcastID)
	if err != nil {
		return nil, err
	}
	if broadcast.AuthorID == responderID {
		return nil, errors.BadRequest("You cannot respond to your own broadcast", nil)
	}
	if broadcast.Status != entity.BroadcastActive {
		return nil, errors.Conflict("Broadcast is no longer active", nil)
	}

	pseudoListingID := "broadcast-" + broadcast.ID
	if existing, err := uc.chatRepo.GetByKey(ctx, broadcast.AuthorID, responderID, pseudoListingID); err == nil {
		return existing, nil
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	chat := &entity.Chat{
		Participants: []string{broadcast.AuthorID, responderID},
		BuyerID:      broadcast.AuthorID,
		SellerID:     responderID,
		ListingID:    pseudoListingID,
		ListingTitle: broadcast.Need,
		ListingPrice: broadcast.MaxBudget,
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// GetSupportChat returns the user's support thread, lazily creating and
// seeding it on first access.
func (uc *ChatUseCase) GetSupportChat(ctx context.Context, userID string) (*entity.Chat, error) {
	if existing, err := uc.chatRepo.GetSupportChat(ctx, userID); err == nil {
		return existing, nil
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	chat := &entity.Chat{
		ID:           "support-" + userID,
		Participants: []string{userID, "sellit-support"},
		ListingTitle: "Sellit Support",
		IsSupport:    true,
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	welcome := &entity.Message{
		ChatID:   chat.ID,
		SenderID: "sellit-support",
		Content:  "Hi! This is Sellit Support. How can we help you today?",
		Type:     "text",
	}
	if err := uc.chatRepo.CreateMessage(ctx, welcome); err != nil {
		return nil, err
	}

	return uc.chatRepo.GetByID(ctx, chat.ID)
}

type SendMessageInput struct {
	Content string `json:"content" validate:"required"`
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID, chatID string, input SendMessageInput) (*entity.Message, error) {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		return nil, errors.TooManyRequests("You're sending messages too fast", waitTime)
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	message := &entity.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  input.Content,
		Type:     "text",
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if uc.wsManager != nil {
		for _, participant := range chat.Participants {
			if participant == senderID {
				continue
			}
			uc.wsManager.SendToUser(participant, websocket.Event{
				Type:    "message",
				Payload: message,
			})
		}
	}

	return message, nil
}

func (uc *ChatUseCase) GetChat(ctx context.Context, userID, chatID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}
	return chat, nil
}

func (uc *ChatUseCase) ListChats(ctx context.Context, userID string) ([]*entity.Chat, error) {
	return uc.chatRepo.ListByUser(ctx, userID)
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}
	if !chat.HasParticipant(userID) {
		return nil, 0, errors.Forbidden("You are not a participant in this chat", nil)
	}
	return uc.chatRepo.ListMessages(ctx, chatID, limit, offset)
}
