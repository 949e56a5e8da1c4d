package pgsql

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
)

// reconnectDelay paces listener restarts after a dropped connection.
const reconnectDelay = 3 * time.Second

// DefaultChangeChannel is the notify channel hardcoded by the row-change
// triggers in the migrations. A non-default CHANGE_FEED_CHANNEL only takes
// effect together with a migration renaming the channel in the trigger
// functions.
const DefaultChangeChannel = "keluargaku_changes"

// changeNotification mirrors the JSON payload built by the row-change
// triggers. Field names must stay in sync with the migration that creates
// the notify function.
type changeNotification struct {
	Collection string `json:"collection"`
	Op         string `json:"op"`
	RecordID   string `json:"record_id"`
	UserID     string `json:"user_id"`
	FamilyID   string `json:"family_id"`
}

// ChangeListener holds a dedicated connection on LISTEN and republishes row
// changes into the in-process change feed.
type ChangeListener struct {
	pool    *pgxpool.Pool
	channel string
	feed    portssvc.ChangeFeedSvc
	logger  *slog.Logger
}

// NewChangeListener creates a listener on the given notify channel.
func NewChangeListener(pool *pgxpool.Pool, channel string, feed portssvc.ChangeFeedSvc, logger *slog.Logger) *ChangeListener {
	return &ChangeListener{pool: pool, channel: channel, feed: feed, logger: logger}
}

// Run blocks on the notification stream until ctx is cancelled, reconnecting
// after transient failures. Run it in its own goroutine.
func (l *ChangeListener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			l.logger.Error("change listener connection lost, reconnecting",
				slog.String("error", err.Error()),
				slog.Duration("delay", reconnectDelay))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (l *ChangeListener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+sanitizeChannel(l.channel)); err != nil {
		return err
	}
	l.logger.Info("change listener attached", slog.String("channel", l.channel))

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var payload changeNotification
		if err := json.Unmarshal([]byte(notification.Payload), &payload); err != nil {
			l.logger.Warn("dropping malformed change notification",
				slog.String("payload", notification.Payload),
				slog.String("error", err.Error()))
			continue
		}

		l.feed.Publish(domain.ChangeEvent{
			Collection: payload.Collection,
			Op:         domain.ChangeOp(payload.Op),
			RecordID:   payload.RecordID,
			UserID:     payload.UserID,
			FamilyID:   payload.FamilyID,
			OccurredAt: time.Now(),
		})
	}
}

// sanitizeChannel keeps the LISTEN target to a bare identifier. Channel names
// come from configuration, not user input, so this only guards against
// accidents.
func sanitizeChannel(channel string) string {
	for _, r := range channel {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			continue
		}
		return DefaultChangeChannel
	}
	if channel == "" {
		return DefaultChangeChannel
	}
	return channel
}
