package usecase

import (
	"context"

	"sellit/internal/domain/entity"
	"sellit/internal/domain/repository"
	"sellit/pkg/errors"
)

type BroadcastUseCase struct {
	broadcastRepo repository.BroadcastRepository
	userRepo      repository.UserRepository
}

func NewBroadcastUseCase(broadcastRepo repository.BroadcastRepository, userRepo repository.UserRepository) *BroadcastUseCase {
	return &BroadcastUseCase{
		broadcastRepo: broadcastRepo,
		userRepo:      userRepo,
	}
}

type CreateBroadcastInput struct {
	Need      string `json:"need" validate:"required"`
	Details   string `json:"details"`
	MinBudget int64  `json:"min_budget" validate:"gte=0"`
	MaxBudget int64  `json:"max_budget" validate:"gte=0"`
	Location  string `json:"location"`
	Category  string `json:"category" validate:"required"`
	IsBoosted bool   `json:"is_boosted"`
}

func (uc *BroadcastUseCase) CreateBroadcast(ctx context.Context, authorID string, input CreateBroadcastInput) (*entity.Broadcast, error) {
	if input.Need == "" {
		return nil, errors.Validation("Broadcast need is required", nil)
	}
	if input.MaxBudget > 0 && input.MinBudget > input.MaxBudget {
		return nil, errors.Validation("Minimum budget cannot exceed maximum budget", nil)
	}

	authorName := authorID
	authorAvatar := ""
	if author, err := uc.userRepo.GetByID(ctx, authorID); err == nil {
		authorName = author.Name
		authorAvatar = author.Avatar
	}

	broadcast := &entity.Broadcast{
		AuthorID:     authorID,
		AuthorName:   authorName,
		AuthorAvatar: authorAvatar,
		Need:         input.Need,
		Details:      input.Details,
		MinBudget:    input.MinBudget,
		MaxBudget:    input.MaxBudget,
		Location:     input.Location,
		Category:     input.Category,
		IsBoosted:    input.IsBoosted,
		Status:       entity.BroadcastActive,
	}
	if err := uc.broadcastRepo.Create(ctx, broadcast); err != nil {
		return nil, err
	}
	return broadcast, nil
}

func (uc *BroadcastUseCase) GetBroadcast(ctx context.Context, id string) (*entity.Broadcast, error) {
	return uc.broadcastRepo.GetByID(ctx, id)
}

func (uc *BroadcastUseCase) ListActive(ctx context.Context, limit, offset int) ([]*entity.Broadcast, int64, error) {
	return uc.broadcastRepo.ListActive(ctx, limit, offset)
}

// FulfillBroadcast marks the author's broadcast as satisfied so it stops
// appearing in the active feed.
func (uc *BroadcastUseCase) FulfillBroadcast(ctx context.Context, authorID, id string) (*entity.Broadcast, error) {
	broadcast, err := uc.broadcastRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if broadcast.AuthorID != authorID {
		return nil, errors.Forbidden("You don't have permission to update this broadcast", nil)
	}
	if broadcast.Status == entity.BroadcastFulfilled {
		return broadcast, nil
	}
	if broadcast.Status != entity.BroadcastActive {
		return nil, errors.Conflict("Broadcast is no longer active", nil)
	}

	broadcast.Status = entity.BroadcastFulfilled
	if err := uc.broadcastRepo.Update(ctx, broadcast); err != nil {
		return nil, err
	}
	return broadcast, nil
}
