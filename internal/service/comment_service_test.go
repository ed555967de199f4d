package service

import (
	"Naomi/internal/api/dto"
	"Naomi/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type commentFixture struct {
	posts    *fakePostRepo
	comments *fakeCommentRepo
	users    *fakeUserRepo
	svc      CommentService
}

func newCommentFixture() *commentFixture {
	comments := newFakeCommentRepo()
	posts := newFakePostRepo(comments)
	users := newFakeUserRepo()
	userSvc := NewUserService(users, nil)

	return &commentFixture{
		posts:    posts,
		comments: comments,
		users:    users,
		svc:      NewCommentService(comments, posts, userSvc),
	}
}

func (f *commentFixture) seedPost(t *testing.T) *model.Post {
	t.Helper()
	post := &model.Post{
		ID:        primitive.NewObjectID(),
		Title:     "host",
		AuthorID:  primitive.NewObjectID(),
		Likes:     []primitive.ObjectID{},
		Dislikes:  []primitive.ObjectID{},
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.posts.Create(context.Background(), post))
	return post
}

func TestAddComment(t *testing.T) {
	f := newCommentFixture()
	post := f.seedPost(t)
	author := primitive.NewObjectID()

	got, err := f.svc.AddComment(context.Background(), author.Hex(), &dto.CommentCreateDTO{
		PostID: post.ID.Hex(),
		Text:   " 不错 ",
	})

	require.NoError(t, err)
	assert.Equal(t, "不错", got.Text)
	assert.Empty(t, got.ParentID)
	assert.NotNil(t, got.Replies)
}

func TestAddCommentEmptyText(t *testing.T) {
	f := newCommentFixture()
	post := f.seedPost(t)

	_, err := f.svc.AddComment(context.Background(), primitive.NewObjectID().Hex(), &dto.CommentCreateDTO{
		PostID: post.ID.Hex(),
		Text:   "   ",
	})

	assert.ErrorIs(t, err, ErrCommentTextEmpty)
}

func TestAddCommentPostNotFound(t *testing.T) {
	f := newCommentFixture()

	_, err := f.svc.AddComment(context.Background(), primitive.NewObjectID().Hex(), &dto.CommentCreateDTO{
		PostID: primitive.NewObjectID().Hex(),
		Text:   "悬空",
	})

	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestAddCommentReply(t *testing.T) {
	f := newCommentFixture()
	post := f.seedPost(t)
	author := primitive.NewObjectID()

	parent, err := f.svc.AddComment(context.Background(), author.Hex(), &dto.CommentCreateDTO{
		PostID: post.ID.Hex(),
		Text:   "一楼",
	})
	require.NoError(t, err)

	reply, err := f.svc.AddComment(context.Background(), author.Hex(), &dto.CommentCreateDTO{
		PostID:   post.ID.Hex(),
		Text:     "回一楼",
		ParentID: parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, reply.ParentID)
}

func TestAddCommentParentNotFound(t *testing.T) {
	f := newCommentFixture()
	post := f.seedPost(t)

	_, err := f.svc.AddComment(context.Background(), primitive.NewObjectID().Hex(), &dto.CommentCreateDTO{
		PostID:   post.ID.Hex(),
		Text:     "回复幽灵",
		ParentID: primitive.NewObjectID().Hex(),
	})

	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestAddCommentParentFromAnotherPost(t *testing.T) {
	f := newCommentFixture()
	postA := f.seedPost(t)
	postB := f.seedPost(t)
	author := primitive.NewObjectID()

	parent, err := f.svc.AddComment(context.Background(), author.Hex(), &dto.CommentCreateDTO{
		PostID: postA.ID.Hex(),
		Text:   "A 帖评论",
	})
	require.NoError(t, err)

	// 父评论必须属于同一帖子
	_, err = f.svc.AddComment(context.Background(), author.Hex(), &dto.CommentCreateDTO{
		PostID:   postB.ID.Hex(),
		Text:     "串场回复",
		ParentID: parent.ID,
	})
	assert.ErrorIs(t, err, ErrParentMismatch)
}

func TestListCommentsBuildsForest(t *testing.T) {
	f := newCommentFixture()
	post := f.seedPost(t)
	author := primitive.NewObjectID()

	root, err := f.svc.AddComment(context.Background(), author.Hex(), &dto.CommentCreateDTO{
		PostID: post.ID.Hex(),
		Text:   "根",
	})
	require.NoError(t, err)

	_, err = f.svc.AddComment(context.Background(), author.Hex(), &dto.CommentCreateDTO{
		PostID:   post.ID.Hex(),
		Text:     "子",
		ParentID: root.ID,
	})
	require.NoError(t, err)

	forest, err := f.svc.ListComments(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Replies, 1)
	assert.Equal(t, "子", forest[0].Replies[0].Text)
}

func TestListCommentsMissingPostIsEmpty(t *testing.T) {
	f := newCommentFixture()

	forest, err := f.svc.ListComments(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Empty(t, forest)
}

func TestDeleteCommentPromotesChildren(t *testing.T) {
	f := newCommentFixture()
	post := f.seedPost(t)
	author := primitive.NewObjectID()

	root, err := f.svc.AddComment(context.Background(), author.Hex(), &dto.CommentCreateDTO{
		PostID: post.ID.Hex(),
		Text:   "将被删除",
	})
	require.NoError(t, err)

	child, err := f.svc.AddComment(context.Background(), author.Hex(), &dto.CommentCreateDTO{
		PostID:   post.ID.Hex(),
		Text:     "子评论",
		ParentID: root.ID,
	})
	require.NoError(t, err)

	grandchild, err := f.svc.AddComment(context.Background(), author.Hex(), &dto.CommentCreateDTO{
		PostID:   post.ID.Hex(),
		Text:     "孙评论",
		ParentID: child.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteComment(context.Background(), author.Hex(), root.ID))

	forest, err := f.svc.ListComments(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	// 直接子评论提升为一级，孙评论仍挂在子评论下
	require.Len(t, forest, 1)
	assert.Equal(t, child.ID, forest[0].ID)
	require.Len(t, forest[0].Replies, 1)
	assert.Equal(t, grandchild.ID, forest[0].Replies[0].ID)
}

func TestDeleteCommentNotOwner(t *testing.T) {
	f := newCommentFixture()
	post := f.seedPost(t)

	comment, err := f.svc.AddComment(context.Background(), primitive.NewObjectID().Hex(), &dto.CommentCreateDTO{
		PostID: post.ID.Hex(),
		Text:   "受保护",
	})
	require.NoError(t, err)

	err = f.svc.DeleteComment(context.Background(), primitive.NewObjectID().Hex(), comment.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestDeleteCommentNotFound(t *testing.T) {
	f := newCommentFixture()

	err := f.svc.DeleteComment(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestReactComment(t *testing.T) {
	f := newCommentFixture()
	post := f.seedPost(t)
	author := primitive.NewObjectID()

	comment, err := f.svc.AddComment(context.Background(), author.Hex(), &dto.CommentCreateDTO{
		PostID: post.ID.Hex(),
		Text:   "求赞",
	})
	require.NoError(t, err)

	user := primitive.NewObjectID()
	liked, err := f.svc.ReactComment(context.Background(), user.Hex(), comment.ID, model.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.LikesCount)

	disliked, err := f.svc.ReactComment(context.Background(), user.Hex(), comment.ID, model.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, 0, disliked.LikesCount)
	assert.Equal(t, 1, disliked.DislikesCount)
}

func TestReactCommentNotFound(t *testing.T) {
	f := newCommentFixture()

	_, err := f.svc.ReactComment(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex(), model.ReactionLike)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
