package userhub

import (
	"Naomi/internal/api/config"
	"Naomi/internal/model"
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client 用户中心只读客户端，本地 user 集合未命中时回源
type Client struct {
	http *resty.Client
}

func NewClient(cfg config.UserHubConfig) *Client {
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(2)

	return &Client{http: c}
}

type userPayload struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// GetUser 拉取单个用户档案
func (s *Client) GetUser(ctx context.Context, id string) (*model.User, error) {
	var payload userPayload

	resp, err := s.http.R().
		SetContext(ctx).
		SetPathParam("user_id", id).
		SetResult(&payload).
		Get("/api/user/{user_id}/simple")
	if err != nil {
		return nil, errors.Wrap(err, "userhub request failed")
	}
	if resp.IsError() {
		return nil, errors.Errorf("userhub returned status %d for user %s", resp.StatusCode(), id)
	}

	oid, err := primitive.ObjectIDFromHex(payload.ID)
	if err != nil {
		return nil, errors.Wrap(err, "userhub returned malformed user id")
	}

	return &model.User{
		ID:        oid,
		Username:  payload.Username,
		AvatarURL: payload.AvatarURL,
		UpdatedAt: time.Now(),
	}, nil
}
