package service

import (
	"Naomi/internal/api/dto"
	"Naomi/internal/model"
	"Naomi/internal/pkg/consts"
	"Naomi/internal/pkg/redis"
	"Naomi/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CommentService interface {
	ListComments(ctx context.Context, postID string) ([]*dto.CommentDTO, error)
	AddComment(ctx context.Context, userID string, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, userID, commentID string) error
	ReactComment(ctx context.Context, userID, commentID, kind string) (*dto.ReactionDTO, error)
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepo
	postRepo    repository.PostRepo
	userSvc     UserService
}

func NewCommentService(commentRepo repository.CommentRepo, postRepo repository.PostRepo, userSvc UserService) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userSvc:     userSvc,
	}
}

// ListComments 返回帖子的评论森林
// 不校验帖子存在，已删帖子的评论列表就是空森林
func (s *commentServiceImpl) ListComments(ctx context.Context, postID string) ([]*dto.CommentDTO, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrParamInvalid
	}

	comments, err := s.commentRepo.ListByPostID(ctx, id)
	if err != nil {
		log.ErrorContext(ctx, "list comments failed", "post_id", postID, "err", err)
		return nil, UnExpectedError
	}

	authorIDs := make([]primitive.ObjectID, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID)
	}
	authors, err := s.userSvc.GetSimpleByIDs(ctx, authorIDs)
	if err != nil {
		log.WarnContext(ctx, "load comment authors failed", "post_id", postID, "err", err)
		authors = map[primitive.ObjectID]*model.User{}
	}

	flat := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		flat = append(flat, toCommentDTO(c, authors[c.AuthorID]))
	}
	return BuildCommentTree(flat), nil
}

func (s *commentServiceImpl) AddComment(ctx context.Context, userID string, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	authorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotLoggedIn
	}
	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		return nil, ErrParamInvalid
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrCommentTextEmpty
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		log.ErrorContext(ctx, "load post for comment failed", "post_id", req.PostID, "err", err)
		return nil, UnExpectedError
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	var parentID *primitive.ObjectID
	if req.ParentID != "" {
		pid, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			return nil, ErrParamInvalid
		}
		parent, err := s.commentRepo.GetByID(ctx, pid)
		if err != nil {
			log.ErrorContext(ctx, "load parent comment failed", "parent_id", req.ParentID, "err", err)
			return nil, UnExpectedError
		}
		if parent == nil {
			return nil, ErrCommentNotFound
		}
		if parent.PostID != postID {
			return nil, ErrParentMismatch
		}
		parentID = &pid
	}

	comment := &model.Comment{
		ID:        primitive.NewObjectID(),
		PostID:    postID,
		AuthorID:  authorID,
		ParentID:  parentID,
		Text:      text,
		Likes:     []primitive.ObjectID{},
		Dislikes:  []primitive.ObjectID{},
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		log.ErrorContext(ctx, "create comment failed", "post_id", req.PostID, "err", err)
		return nil, UnExpectedError
	}

	s.invalidateCount(ctx, req.PostID)

	authors, err := s.userSvc.GetSimpleByIDs(ctx, []primitive.ObjectID{authorID})
	if err != nil {
		authors = map[primitive.ObjectID]*model.User{}
	}
	return toCommentDTO(comment, authors[authorID]), nil
}

// DeleteComment 作者本人删除评论，直接子评论提升为一级评论
func (s *commentServiceImpl) DeleteComment(ctx context.Context, userID, commentID string) error {
	requesterID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotLoggedIn
	}
	id, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return ErrParamInvalid
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		log.ErrorContext(ctx, "load comment for delete failed", "comment_id", commentID, "err", err)
		return UnExpectedError
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.AuthorID != requesterID {
		return ErrNotOwner
	}

	if err := s.commentRepo.DeletePromote(ctx, id, comment.PostID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrCommentNotFound
		}
		log.ErrorContext(ctx, "delete comment failed", "comment_id", commentID, "err", err)
		return UnExpectedError
	}

	s.invalidateCount(ctx, comment.PostID.Hex())
	return nil
}

func (s *commentServiceImpl) ReactComment(ctx context.Context, userID, commentID, kind string) (*dto.ReactionDTO, error) {
	requesterID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotLoggedIn
	}
	id, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, ErrParamInvalid
	}

	comment, err := s.commentRepo.React(ctx, id, requesterID, kind)
	if err != nil {
		log.ErrorContext(ctx, "comment reaction failed", "comment_id", commentID, "err", err)
		return nil, UnExpectedError
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	return &dto.ReactionDTO{
		Kind:          kind,
		LikesCount:    len(comment.Likes),
		DislikesCount: len(comment.Dislikes),
	}, nil
}

func (s *commentServiceImpl) invalidateCount(ctx context.Context, postID string) {
	if err := redis.DeleteKey(ctx, consts.PostCommentKey+postID); err != nil && !errors.Is(err, redis.ErrNotReady) {
		log.WarnContext(ctx, "comment count cache invalidate failed", "post_id", postID, "err", err)
	}
}

func toCommentDTO(comment *model.Comment, author *model.User) *dto.CommentDTO {
	out := &dto.CommentDTO{
		ID:            comment.ID.Hex(),
		PostID:        comment.PostID.Hex(),
		AuthorID:      comment.AuthorID.Hex(),
		Text:          comment.Text,
		LikesCount:    len(comment.Likes),
		DislikesCount: len(comment.Dislikes),
		CreatedAt:     comment.CreatedAt.Format(timeLayout),
		Replies:       make([]*dto.CommentDTO, 0),
	}
	if comment.ParentID != nil {
		out.ParentID = comment.ParentID.Hex()
	}
	if author != nil {
		out.Username = author.Username
		out.AvatarURL = author.AvatarURL
	}
	return out
}
