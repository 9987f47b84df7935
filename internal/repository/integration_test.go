package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests exercise the real schema constraints and only run against a
// live Postgres; see TestMain.

func seedUser(t *testing.T, ctx context.Context, users UserRepository) *models.User {
	t.Helper()
	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	user := &models.User{
		Username: "u" + suffix,
		Email:    "u" + suffix + "@example.com",
		Password: "hash",
	}
	require.NoError(t, users.Create(ctx, user))
	return user
}

func TestDeletePostCascadesComments(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)

	author := seedUser(t, ctx, users)
	post := &models.Post{Text: "doomed", AuthorID: author.ID}
	require.NoError(t, posts.Create(ctx, post))
	require.NoError(t, comments.Create(ctx, &models.Comment{
		PostID: post.ID, AuthorID: author.ID, Text: "going down with the ship",
	}))

	require.NoError(t, posts.Delete(ctx, post.ID))

	var count int64
	db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteGroupClearsPostReference(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	groups := NewGroupRepository(db)
	posts := NewPostRepository(db)

	author := seedUser(t, ctx, users)
	group := &models.Group{
		Title:       "Ephemeral",
		Slug:        fmt.Sprintf("ephemeral-%d", time.Now().UnixNano()),
		Description: "soon gone",
	}
	require.NoError(t, groups.Create(ctx, group))

	post := &models.Post{Text: "survivor", AuthorID: author.ID, GroupID: &group.ID}
	require.NoError(t, posts.Create(ctx, post))

	require.NoError(t, groups.Delete(ctx, group.ID))

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, got.GroupID)
	assert.Equal(t, "survivor", got.Text)
}

func TestFollowPairIsUnique(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()

	users := NewUserRepository(db)
	follows := NewFollowRepository(db)

	follower := seedUser(t, ctx, users)
	author := seedUser(t, ctx, users)

	require.NoError(t, follows.Follow(ctx, follower.ID, author.ID))
	require.NoError(t, follows.Follow(ctx, follower.ID, author.ID))

	var count int64
	db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", follower.ID, author.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, follows.Unfollow(ctx, follower.ID, author.ID))
	following, err := follows.IsFollowing(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, following)
}
