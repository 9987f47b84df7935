// Package service implements the content rules on top of the repositories.
package service

import (
	"context"
	"errors"
	"strings"

	"quill/internal/models"
	"quill/internal/pagination"
	"quill/internal/repository"
)

// PageInfo is the serializable shape of a pagination.Page, with the
// prev/next flags materialized for the presentation layer.
type PageInfo struct {
	Number     int   `json:"number"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

func pageInfo(p pagination.Page) PageInfo {
	return PageInfo{
		Number:     p.Number,
		TotalPages: p.TotalPages,
		TotalItems: p.TotalItems,
		HasPrev:    p.HasPrev(),
		HasNext:    p.HasNext(),
	}
}

// PostPage is one page of a post listing.
type PostPage struct {
	Posts []*models.Post `json:"posts"`
	Page  PageInfo       `json:"page"`
}

// GroupPage is a group listing page together with the group itself.
type GroupPage struct {
	Group *models.Group  `json:"group"`
	Posts []*models.Post `json:"posts"`
	Page  PageInfo       `json:"page"`
}

// ProfilePage is an author's profile: their posts, the unpaginated total,
// and whether the viewer follows them.
type ProfilePage struct {
	Author      *models.User   `json:"author"`
	PostCount   int64          `json:"post_count"`
	Posts       []*models.Post `json:"posts"`
	Page        PageInfo       `json:"page"`
	IsFollowing bool           `json:"is_following"`
}

// PostDetail is a single post with its comments and the author's post count.
type PostDetail struct {
	Post            *models.Post     `json:"post"`
	AuthorPostCount int64            `json:"author_post_count"`
	Comments        []models.Comment `json:"comments"`
}

type CreatePostInput struct {
	AuthorID  uint
	Text      string
	GroupSlug string
	Image     string
}

type EditPostInput struct {
	PrincipalID uint
	PostID      uint
	Text        string
	GroupSlug   string
	// Image replaces the stored attachment path when non-empty; an empty
	// value keeps the existing one.
	Image string
}

type PostService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
	}
}

// ListPosts returns one page of the global listing, newest first.
// An out-of-range page number clamps to the nearest valid page.
func (s *PostService) ListPosts(ctx context.Context, pageNumber int) (*PostPage, error) {
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	page := pagination.Paginate(total, pageNumber)
	posts, err := s.postRepo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Page: pageInfo(page)}, nil
}

// ListGroupPosts returns one page of a group's posts, or NOT_FOUND for an
// unknown slug.
func (s *PostService) ListGroupPosts(ctx context.Context, slug string, pageNumber int) (*GroupPage, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	page := pagination.Paginate(total, pageNumber)
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return &GroupPage{Group: group, Posts: posts, Page: pageInfo(page)}, nil
}

// Profile returns an author's page. viewerID is zero for anonymous viewers,
// in which case IsFollowing is always false.
func (s *PostService) Profile(ctx context.Context, username string, pageNumber int, viewerID uint) (*ProfilePage, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	page := pagination.Paginate(total, pageNumber)
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != 0 {
		following, err = s.followRepo.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfilePage{
		Author:      author,
		PostCount:   total,
		Posts:       posts,
		Page:        pageInfo(page),
		IsFollowing: following,
	}, nil
}

// PostDetail returns a post with its comments (oldest first) and the total
// post count of its author.
func (s *PostService) PostDetail(ctx context.Context, postID uint) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	authorCount, err := s.postRepo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{
		Post:            post,
		AuthorPostCount: authorCount,
		Comments:        comments,
	}, nil
}

// CreatePost validates the input and persists a new post owned by the
// caller. Nothing is written when validation fails.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Text is required").
			WithField("text", "this field is required")
	}

	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     text,
		AuthorID: in.AuthorID,
		GroupID:  groupID,
		Image:    in.Image,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// EditPost applies validated changes to an existing post. Only the author may
// edit; anyone else gets a FORBIDDEN error that the handler converts into a
// redirect to the post's read view. Author and creation time are immutable.
func (s *PostService) EditPost(ctx context.Context, in EditPostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.PrincipalID {
		return nil, models.NewForbiddenError("Only the author can edit this post")
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Text is required").
			WithField("text", "this field is required")
	}

	groupID, err := s.resolveGroup(ctx, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	post.Text = text
	post.GroupID = groupID
	if in.Image != "" {
		post.Image = in.Image
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// FollowedFeed returns one page of posts authored by anyone the user follows.
func (s *PostService) FollowedFeed(ctx context.Context, userID uint, pageNumber int) (*PostPage, error) {
	total, err := s.postRepo.CountFollowed(ctx, userID)
	if err != nil {
		return nil, err
	}
	page := pagination.Paginate(total, pageNumber)
	posts, err := s.postRepo.ListFollowed(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Page: pageInfo(page)}, nil
}

// DeletePost removes a post; the store cascades to its comments. Not part of
// the public surface, used by administrative maintenance.
func (s *PostService) DeletePost(ctx context.Context, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

// resolveGroup maps an optional slug to a group ID. An unknown slug is a
// field-level validation error, mirroring an invalid form choice.
func (s *PostService) resolveGroup(ctx context.Context, slug string) (*uint, error) {
	if slug == "" {
		return nil, nil
	}
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return nil, models.NewValidationError("Unknown group").
				WithField("group", "select a valid group")
		}
		return nil, err
	}
	return &group.ID, nil
}
