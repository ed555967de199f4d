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
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	cacheExpiration = 7 * 24 * time.Hour
	timeLayout      = "2006-01-02 15:04:05"

	searchPostLimit = 20
	searchUserLimit = 10
)

// MediaStore 媒体对象存储能力
type MediaStore interface {
	Stat(ctx context.Context, key string) error
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
}

type PostService interface {
	ListPosts(ctx context.Context, sortMode string) ([]*dto.PostDTO, error)
	SearchPosts(ctx context.Context, keyword string) ([]*dto.PostDTO, error)
	GetPost(ctx context.Context, postID string) (*dto.PostDTO, error)
	CreatePost(ctx context.Context, userID string, req *dto.PostCreateDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID, postID string) error
	ReactPost(ctx context.Context, userID, postID, kind string) (*dto.ReactionDTO, error)
}

type postServiceImpl struct {
	postRepo    repository.PostRepo
	commentRepo repository.CommentRepo
	userSvc     UserService
	media       MediaStore
}

func NewPostService(postRepo repository.PostRepo, commentRepo repository.CommentRepo, userSvc UserService, media MediaStore) PostService {
	return &postServiceImpl{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userSvc:     userSvc,
		media:       media,
	}
}

// ListPosts 按 hot/new 排序返回全部帖子
func (s *postServiceImpl) ListPosts(ctx context.Context, sortMode string) ([]*dto.PostDTO, error) {
	if sortMode != SortHot && sortMode != SortNew {
		return nil, ErrParamInvalid
	}

	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list posts failed", "err", err)
		return nil, UnExpectedError
	}

	ranked := RankPosts(posts, sortMode, time.Now())
	return decoratePosts(ctx, ranked, s.commentRepo, s.userSvc, s.media)
}

// SearchPosts 标题子串检索，返回全部命中，空白关键词返回空结果
// 聚合搜索才做条数截断，这里不做
func (s *postServiceImpl) SearchPosts(ctx context.Context, keyword string) ([]*dto.PostDTO, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []*dto.PostDTO{}, nil
	}

	posts, err := s.postRepo.SearchByTitle(ctx, keyword, 0)
	if err != nil {
		log.ErrorContext(ctx, "search posts failed", "keyword", keyword, "err", err)
		return nil, UnExpectedError
	}
	return decoratePosts(ctx, posts, s.commentRepo, s.userSvc, s.media)
}

func (s *postServiceImpl) GetPost(ctx context.Context, postID string) (*dto.PostDTO, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrParamInvalid
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		log.ErrorContext(ctx, "get post failed", "post_id", postID, "err", err)
		return nil, UnExpectedError
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	count, err := s.commentCount(ctx, id)
	if err != nil {
		log.ErrorContext(ctx, "count comments failed", "post_id", postID, "err", err)
		return nil, UnExpectedError
	}

	authors, err := s.userSvc.GetSimpleByIDs(ctx, []primitive.ObjectID{post.AuthorID})
	if err != nil {
		log.WarnContext(ctx, "load post author failed", "post_id", postID, "err", err)
		authors = map[primitive.ObjectID]*model.User{}
	}

	return toPostDTO(post, count, authors[post.AuthorID], s.media), nil
}

// commentCount 单帖评论数走缓存，未命中回源并写入
func (s *postServiceImpl) commentCount(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	key := consts.PostCommentKey + postID.Hex()
	if cached, err := redis.GetInt64(ctx, key); err == nil {
		return cached, nil
	}

	count, err := s.commentRepo.CountByPostID(ctx, postID)
	if err != nil {
		return 0, err
	}
	if err := redis.SetWithExpiration(ctx, key, strconv.FormatInt(count, 10), cacheExpiration); err != nil && !errors.Is(err, redis.ErrNotReady) {
		log.WarnContext(ctx, "comment count cache write failed", "post_id", postID.Hex(), "err", err)
	}
	return count, nil
}

func (s *postServiceImpl) CreatePost(ctx context.Context, userID string, req *dto.PostCreateDTO) (*dto.PostDTO, error) {
	authorID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotLoggedIn
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleEmpty
	}

	// 建帖前确认媒体对象已经上传成功
	if err := s.media.Stat(ctx, req.MediaKey); err != nil {
		log.WarnContext(ctx, "media object not available", "media_key", req.MediaKey, "err", err)
		return nil, ErrMediaUnavailable
	}

	post := &model.Post{
		ID:        primitive.NewObjectID(),
		Title:     title,
		MediaKey:  req.MediaKey,
		MediaType: req.MediaType,
		AuthorID:  authorID,
		Likes:     []primitive.ObjectID{},
		Dislikes:  []primitive.ObjectID{},
		CreatedAt: time.Now(),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		log.ErrorContext(ctx, "create post failed", "err", err)
		return nil, UnExpectedError
	}

	authors, err := s.userSvc.GetSimpleByIDs(ctx, []primitive.ObjectID{authorID})
	if err != nil {
		authors = map[primitive.ObjectID]*model.User{}
	}
	return toPostDTO(post, 0, authors[authorID], s.media), nil
}

// DeletePost 作者本人删除帖子，评论随事务一并清除
// 媒体释放在事务提交后进行，失败转入补偿队列
func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID string) error {
	requesterID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotLoggedIn
	}
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrParamInvalid
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		log.ErrorContext(ctx, "load post for delete failed", "post_id", postID, "err", err)
		return UnExpectedError
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != requesterID {
		return ErrNotOwner
	}

	if err := s.postRepo.DeleteCascade(ctx, id); err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return ErrPostNotFound
		case errors.Is(err, repository.ErrRetryExhausted):
			return ErrConflict
		default:
			log.ErrorContext(ctx, "cascade delete failed", "post_id", postID, "err", err)
			return UnExpectedError
		}
	}

	if post.MediaKey != "" {
		if err := s.media.Remove(ctx, post.MediaKey); err != nil {
			log.WarnContext(ctx, "media release failed, queued for reconcile",
				"post_id", postID, "media_key", post.MediaKey, "err", err)
			if serr := redis.SAdd(context.Background(), consts.MediaReconcileKey, post.MediaKey); serr != nil && !errors.Is(serr, redis.ErrNotReady) {
				log.ErrorContext(ctx, "media reconcile enqueue failed", "media_key", post.MediaKey, "err", serr)
			}
		}
	}

	if err := redis.DeleteKey(ctx, consts.PostCommentKey+postID); err != nil && !errors.Is(err, redis.ErrNotReady) {
		log.WarnContext(ctx, "comment count cache invalidate failed", "post_id", postID, "err", err)
	}
	return nil
}

func (s *postServiceImpl) ReactPost(ctx context.Context, userID, postID, kind string) (*dto.ReactionDTO, error) {
	requesterID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotLoggedIn
	}
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrParamInvalid
	}

	post, err := s.postRepo.React(ctx, id, requesterID, kind)
	if err != nil {
		log.ErrorContext(ctx, "post reaction failed", "post_id", postID, "err", err)
		return nil, UnExpectedError
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	return &dto.ReactionDTO{
		Kind:          kind,
		LikesCount:    len(post.Likes),
		DislikesCount: len(post.Dislikes),
	}, nil
}

// decoratePosts 批量折算评论数、补齐作者档案并转视图
// 列表与搜索共用，作者档案缺失不阻断返回
func decoratePosts(ctx context.Context, posts []*model.Post, commentRepo repository.CommentRepo, userSvc UserService, media MediaStore) ([]*dto.PostDTO, error) {
	if len(posts) == 0 {
		return []*dto.PostDTO{}, nil
	}

	postIDs := make([]primitive.ObjectID, 0, len(posts))
	authorIDs := make([]primitive.ObjectID, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		authorIDs = append(authorIDs, p.AuthorID)
	}

	counts, err := commentRepo.CountByPostIDs(ctx, postIDs)
	if err != nil {
		log.ErrorContext(ctx, "batch comment count failed", "err", err)
		return nil, UnExpectedError
	}

	authors, err := userSvc.GetSimpleByIDs(ctx, authorIDs)
	if err != nil {
		log.WarnContext(ctx, "load post authors failed", "err", err)
		authors = map[primitive.ObjectID]*model.User{}
	}

	result := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		result = append(result, toPostDTO(p, counts[p.ID], authors[p.AuthorID], media))
	}
	return result, nil
}

func toPostDTO(post *model.Post, commentCount int64, author *model.User, media MediaStore) *dto.PostDTO {
	out := &dto.PostDTO{}
	_ = copier.Copy(out, post)

	out.ID = post.ID.Hex()
	out.AuthorID = post.AuthorID.Hex()
	out.MediaURL = media.PublicURL(post.MediaKey)
	out.LikesCount = len(post.Likes)
	out.DislikesCount = len(post.Dislikes)
	out.CommentsCount = commentCount
	out.CreatedAt = post.CreatedAt.Format(timeLayout)
	if author != nil {
		out.Username = author.Username
		out.AvatarURL = author.AvatarURL
	}
	return out
}
