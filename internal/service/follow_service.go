package service

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates a follow edge from the principal to the named author.
// Following yourself is silently ignored, and following someone twice leaves
// a single edge. An unknown target is NOT_FOUND.
func (s *FollowService) Follow(ctx context.Context, principalID uint, targetUsername string) error {
	author, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}
	if author.ID == principalID {
		return nil
	}
	return s.followRepo.Follow(ctx, principalID, author.ID)
}

// Unfollow deletes the follow edge to the named author. A missing edge, or
// even a missing target user, is a no-op rather than an error.
func (s *FollowService) Unfollow(ctx context.Context, principalID uint, targetUsername string) error {
	author, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return nil
		}
		return err
	}
	return s.followRepo.Unfollow(ctx, principalID, author.ID)
}

// IsFollowing reports whether the viewer follows the author.
func (s *FollowService) IsFollowing(ctx context.Context, viewerID, authorID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, viewerID, authorID)
}
