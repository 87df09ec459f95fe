package service

import (
	"context"
	"strconv"
	"time"

	"github.com/dietcoach/backend/internal/models"
	"github.com/dietcoach/backend/pkg/events"
	"github.com/dietcoach/backend/pkg/logging"
	"github.com/dietcoach/backend/pkg/search"
)

// UserIndex is the optional full-text index over users.
type UserIndex interface {
	IndexUser(ctx context.Context, doc search.UserDoc) error
	DeleteUser(ctx context.Context, id uint) error
	SearchUsers(ctx context.Context, query string, from, size int) (int64, []search.UserDoc, error)
}

// publish never fails the caller. Events are best effort.
func publish(ctx context.Context, p events.Publisher, topic string, ev events.Event) {
	if p == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	key := strconv.FormatUint(uint64(ev.UserID), 10)
	if err := p.Publish(ctx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", topic, "type", ev.Type, "error", err)
	}
}

func indexUser(ctx context.Context, idx UserIndex, u *models.User) {
	if idx == nil || u == nil {
		return
	}
	doc := search.UserDoc{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		RoleID:    u.RoleID,
		CreatedAt: u.CreatedAt,
	}
	if err := idx.IndexUser(ctx, doc); err != nil {
		logging.FromContext(ctx).Warn("user_index_failed", "user_id", u.ID, "error", err)
	}
}

func unindexUser(ctx context.Context, idx UserIndex, id uint) {
	if idx == nil {
		return
	}
	if err := idx.DeleteUser(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("user_unindex_failed", "user_id", id, "error", err)
	}
}
