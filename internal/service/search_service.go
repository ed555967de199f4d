package service

import (
	"Naomi/internal/api/dto"
	"Naomi/internal/model"
	"Naomi/internal/repository"
	"context"
	log "log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

type SearchService interface {
	GlobalSearch(ctx context.Context, keyword string) (*dto.GlobalSearchDTO, error)
}

type searchServiceImpl struct {
	postRepo    repository.PostRepo
	userRepo    repository.UserRepo
	commentRepo repository.CommentRepo
	userSvc     UserService
	media       MediaStore
}

func NewSearchService(postRepo repository.PostRepo, userRepo repository.UserRepo, commentRepo repository.CommentRepo, userSvc UserService, media MediaStore) SearchService {
	return &searchServiceImpl{
		postRepo:    postRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		userSvc:     userSvc,
		media:       media,
	}
}

// GlobalSearch 帖子与用户两路并行检索
func (s *searchServiceImpl) GlobalSearch(ctx context.Context, keyword string) (*dto.GlobalSearchDTO, error) {
	result := &dto.GlobalSearchDTO{
		Posts: []*dto.PostDTO{},
		Users: []*dto.UserSimpleDTO{},
	}

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return result, nil
	}

	var (
		posts []*model.Post
		users []*model.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.postRepo.SearchByTitle(gctx, keyword, searchPostLimit)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.userRepo.SearchByUsername(gctx, keyword, searchUserLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		log.ErrorContext(ctx, "global search failed", "keyword", keyword, "err", err)
		return nil, UnExpectedError
	}

	postDTOs, err := decoratePosts(ctx, posts, s.commentRepo, s.userSvc, s.media)
	if err != nil {
		return nil, err
	}
	result.Posts = postDTOs

	for _, u := range users {
		result.Users = append(result.Users, &dto.UserSimpleDTO{
			ID:        u.ID.Hex(),
			Username:  u.Username,
			AvatarURL: u.AvatarURL,
		})
	}
	return result, nil
}
