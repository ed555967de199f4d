package service

import (
	"Naomi/internal/model"
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// 测试替身：以内存 map 复刻仓储层的集合语义

type fakePostRepo struct {
	mu       sync.Mutex
	posts    map[primitive.ObjectID]*model.Post
	comments *fakeCommentRepo

	searchLimit int64
}

func newFakePostRepo(comments *fakeCommentRepo) *fakePostRepo {
	return &fakePostRepo{
		posts:    make(map[primitive.ObjectID]*model.Post),
		comments: comments,
	}
}

func (f *fakePostRepo) Create(_ context.Context, post *model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *post
	return &cp, nil
}

func (f *fakePostRepo) ListAll(_ context.Context) ([]*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Post, 0, len(f.posts))
	for _, p := range f.posts {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakePostRepo) SearchByTitle(_ context.Context, keyword string, limit int64) ([]*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchLimit = limit

	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(keyword))
	out := make([]*model.Post, 0)
	for _, p := range f.posts {
		if re.MatchString(p.Title) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePostRepo) DeleteCascade(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.posts, id)

	f.comments.mu.Lock()
	defer f.comments.mu.Unlock()
	for cid, c := range f.comments.comments {
		if c.PostID == id {
			delete(f.comments.comments, cid)
		}
	}
	return nil
}

func (f *fakePostRepo) React(_ context.Context, id, userID primitive.ObjectID, kind string) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	post.Likes, post.Dislikes = applySetReaction(post.Likes, post.Dislikes, userID, kind)
	cp := *post
	return &cp, nil
}

// applySetReaction 复刻 $addToSet/$pull 的集合变换
func applySetReaction(likes, dislikes []primitive.ObjectID, userID primitive.ObjectID, kind string) ([]primitive.ObjectID, []primitive.ObjectID) {
	switch kind {
	case model.ReactionLike:
		return addToSet(likes, userID), pull(dislikes, userID)
	case model.ReactionDislike:
		return pull(likes, userID), addToSet(dislikes, userID)
	default:
		return pull(likes, userID), pull(dislikes, userID)
	}
}

func addToSet(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, v := range set {
		if v == id {
			return set
		}
	}
	return append(set, id)
}

func pull(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := set[:0]
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[primitive.ObjectID]*model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[primitive.ObjectID]*model.Comment)}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) ListByPostID(_ context.Context, postID primitive.ObjectID) ([]*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Comment, 0)
	for _, c := range f.comments {
		if c.PostID == postID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}

func (f *fakeCommentRepo) CountByPostID(_ context.Context, postID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, c := range f.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (f *fakeCommentRepo) CountByPostIDs(_ context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[primitive.ObjectID]int64, len(postIDs))
	wanted := make(map[primitive.ObjectID]struct{}, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = struct{}{}
	}
	for _, c := range f.comments {
		if _, ok := wanted[c.PostID]; ok {
			counts[c.PostID]++
		}
	}
	return counts, nil
}

func (f *fakeCommentRepo) DeletePromote(_ context.Context, id, postID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.comments, id)
	for _, c := range f.comments {
		if c.PostID == postID && c.ParentID != nil && *c.ParentID == id {
			c.ParentID = nil
		}
	}
	return nil
}

func (f *fakeCommentRepo) React(_ context.Context, id, userID primitive.ObjectID, kind string) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, nil
	}
	c.Likes, c.Dislikes = applySetReaction(c.Likes, c.Dislikes, userID, kind)
	cp := *c
	return &cp, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*model.User

	searchLimit int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*model.User)}
}

func (f *fakeUserRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) SearchByUsername(_ context.Context, keyword string, limit int64) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchLimit = limit

	lower := strings.ToLower(keyword)
	out := make([]*model.User, 0)
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Username), lower) {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeUserRepo) Upsert(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

// fakeMediaStore 记录删除调用，可注入失败
type fakeMediaStore struct {
	mu        sync.Mutex
	objects   map[string]struct{}
	removed   []string
	statErr   error
	removeErr error
}

func newFakeMediaStore(keys ...string) *fakeMediaStore {
	objects := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		objects[k] = struct{}{}
	}
	return &fakeMediaStore{objects: objects}
}

func (f *fakeMediaStore) Stat(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statErr != nil {
		return f.statErr
	}
	if _, ok := f.objects[key]; !ok {
		return errors.New("object not found")
	}
	return nil
}

func (f *fakeMediaStore) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.objects, key)
	f.removed = append(f.removed, key)
	return nil
}

func (f *fakeMediaStore) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return "https://media.test/" + key
}

type fakeUserDirectory struct {
	mu    sync.Mutex
	users map[string]*model.User
	calls int
}

func (f *fakeUserDirectory) GetUser(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found upstream")
	}
	cp := *u
	return &cp, nil
}
