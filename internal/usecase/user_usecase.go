package usecase

import (
	"context"

	"sellit/internal/domain/entity"
	"sellit/internal/domain/repository"
	"sellit/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

type SyncProfileInput struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
	Campus string `json:"campus"`
	Hostel string `json:"hostel"`
}

// SyncProfile mirrors the authenticated user's profile into the store so
// listings, offers, and chats can denormalize the display name and avatar.
func (uc *UserUseCase) SyncProfile(ctx context.Context, userID string, input SyncProfileInput) (*entity.User, error) {
	if input.Name == "" {
		return nil, errors.Validation("Name is required", nil)
	}

	user := &entity.User{
		ID:     userID,
		Name:   input.Name,
		Email:  input.Email,
		Avatar: input.Avatar,
		Campus: input.Campus,
		Hostel: input.Hostel,
	}
	if err := uc.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}
