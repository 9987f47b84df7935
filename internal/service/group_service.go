package service

import (
	"context"
	"strings"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"
)

type CreateGroupInput struct {
	Title       string
	Slug        string
	Description string
}

type GroupService struct {
	groupRepo repository.GroupRepository
}

func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// CreateGroup creates a new topical group. Groups come from administrative
// actors only; the slug is validated here and backed by the store's unique
// index. A missing title falls back to the placeholder.
func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = models.DefaultGroupTitle
	}
	if err := validation.ValidateGroupSlug(in.Slug); err != nil {
		return nil, models.NewValidationError("Invalid slug").
			WithField("slug", err.Error())
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("Description is required").
			WithField("description", "this field is required")
	}

	group := &models.Group{
		Title:       title,
		Slug:        in.Slug,
		Description: in.Description,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups returns all groups, for the post form's group choices.
func (s *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.groupRepo.List(ctx)
}

// DeleteGroup removes a group; posts referencing it keep existing with their
// group reference cleared.
func (s *GroupService) DeleteGroup(ctx context.Context, slug string) error {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.groupRepo.Delete(ctx, group.ID)
}
