package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eduplat/campus-cli/internal/adapters/rest"
	"github.com/eduplat/campus-cli/internal/domain"
)

type NotificationRecord struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Level   string `json:"level,omitempty"`
	Read    bool   `json:"read"`
	SentAt  string `json:"sentAt,omitempty"`
}

// NotificationAPI covers the stored notification history; live pushes come
// through the realtime channel instead.
type NotificationAPI struct {
	client *rest.Client
}

func NewNotificationAPI(client *rest.Client) *NotificationAPI {
	return &NotificationAPI{client: client}
}

func (a *NotificationAPI) ForUser(ctx context.Context, userID int64) ([]NotificationRecord, error) {
	result, err := a.client.CachedGet(ctx, fmt.Sprintf("/notifications/user/%d", userID))
	if err != nil {
		return nil, err
	}

	var records []NotificationRecord
	if err := result.DecodeData(&records); err != nil {
		return nil, fmt.Errorf("decode notification list: %w", err)
	}
	return records, nil
}

func (a *NotificationAPI) MarkRead(ctx context.Context, id int64) (domain.Result, error) {
	return a.client.Do(ctx, fmt.Sprintf("/notifications/%d/read", id), rest.Options{Method: http.MethodPut})
}

func (a *NotificationAPI) MarkAllRead(ctx context.Context, userID int64) (domain.Result, error) {
	return a.client.Do(ctx, fmt.Sprintf("/notifications/user/%d/read-all", userID), rest.Options{Method: http.MethodPut})
}
