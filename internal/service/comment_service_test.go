package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	svc := NewCommentService(comments, posts)
	ctx := context.Background()

	posts.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Post{ID: 5, AuthorID: 2}, nil)
	comments.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.PostID == 5 && c.AuthorID == 1 && c.Text == "nice one"
	})).Return(nil)

	comment, err := svc.AddComment(ctx, CreateCommentInput{AuthorID: 1, PostID: 5, Text: "  nice one  "})
	require.NoError(t, err)
	assert.Equal(t, "nice one", comment.Text)
	comments.AssertExpectations(t)
}

func TestAddComment_MissingPost(t *testing.T) {
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	svc := NewCommentService(comments, posts)
	ctx := context.Background()

	posts.On("GetByID", mock.Anything, uint(404)).
		Return(nil, models.NewNotFoundError("Post", 404))

	_, err := svc.AddComment(ctx, CreateCommentInput{AuthorID: 1, PostID: 404, Text: "hi"})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddComment_EmptyText(t *testing.T) {
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	svc := NewCommentService(comments, posts)
	ctx := context.Background()

	posts.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Post{ID: 5}, nil)

	_, err := svc.AddComment(ctx, CreateCommentInput{AuthorID: 1, PostID: 5, Text: "   "})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListComments_OrderedByRepository(t *testing.T) {
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	svc := NewCommentService(comments, posts)
	ctx := context.Background()

	posts.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Post{ID: 5}, nil)
	comments.On("ListByPost", mock.Anything, uint(5)).
		Return([]models.Comment{{ID: 1, Text: "oldest"}, {ID: 2, Text: "newest"}}, nil)

	got, err := svc.ListComments(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "oldest", got[0].Text)
}
