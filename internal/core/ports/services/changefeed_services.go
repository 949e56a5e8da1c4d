package services

import (
	"context"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
)

// Subscription is a live registration of interest in change events. Events
// arrives on C; the owner must call the feed's Unsubscribe when the consuming
// view is torn down or the registration leaks for the life of the process.
type Subscription struct {
	ID string
	C  <-chan domain.ChangeEvent
}

// ChangeFeedSvc fans row-change notifications out to subscribers. Delivery is
// at-least-once and carries no diff: the consumer contract is to re-issue the
// full list query on any event. Events for the users collection are held back
// by a short debounce so read replicas catch up before the refetch.
type ChangeFeedSvc interface {
	// Subscribe registers interest in changes visible to the given user:
	// rows tagged with their family id, or their own rows when solo. An
	// empty collections list means all watched collections.
	Subscribe(ctx context.Context, actor *domain.User, collections ...string) (*Subscription, error)
	Unsubscribe(id string)
	// Publish injects an event into the feed. Called by the store listener.
	Publish(event domain.ChangeEvent)
}
