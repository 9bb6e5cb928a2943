package repository

import (
	"context"

	"sellit/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	Update(ctx context.Context, chat *entity.Chat) error
	// GetByKey resolves a peer chat by its canonical identity.
	GetByKey(ctx context.Context, buyerID, sellerID, listingID string) (*entity.Chat, error)
	GetSupportChat(ctx context.Context, userID string) (*entity.Chat, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Chat, error)
	// CreateMessage appends to the chat's ordered sequence and refreshes the
	// chat's lastMessage/lastMessageAt cache as one mutation.
	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)
}
