package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
)

// subscriberBuffer caps pending events per subscriber. A consumer that stops
// draining loses events, which is harmless under the refetch contract: any one
// delivered event triggers the same full refetch the lost ones would have.
const subscriberBuffer = 16

type subscriber struct {
	id          string
	userID      string
	familyID    *string
	collections map[string]struct{} // empty means all
	ch          chan domain.ChangeEvent
}

func (s *subscriber) wants(event domain.ChangeEvent) bool {
	if len(s.collections) > 0 {
		if _, ok := s.collections[event.Collection]; !ok {
			return false
		}
	}
	if s.familyID != nil && event.FamilyID == *s.familyID {
		return true
	}
	return event.UserID == s.userID
}

// changeFeedService fans store notifications out to in-process subscribers.
// Events for the users collection are debounced and coalesced: membership
// changes arrive in bursts (a join updates the user row and touches the
// family), and the delay gives replicas time to catch up before subscribers
// refetch.
type changeFeedService struct {
	BaseService
	debounce time.Duration

	mu          sync.Mutex
	subscribers map[string]*subscriber

	pendingMu sync.Mutex
	pending   map[string]domain.ChangeEvent // keyed by collection+family/user
}

// NewChangeFeedService creates a change feed with the given debounce for
// users-collection events.
func NewChangeFeedService(debounce time.Duration) portssvc.ChangeFeedSvc {
	return &changeFeedService{
		debounce:    debounce,
		subscribers: make(map[string]*subscriber),
		pending:     make(map[string]domain.ChangeEvent),
	}
}

var _ portssvc.ChangeFeedSvc = (*changeFeedService)(nil)

// Subscribe registers interest in changes visible to the actor.
func (s *changeFeedService) Subscribe(ctx context.Context, actor *domain.User, collections ...string) (*portssvc.Subscription, error) {
	sub := &subscriber{
		id:          uuid.NewString(),
		userID:      actor.UserID,
		familyID:    actor.FamilyID,
		collections: make(map[string]struct{}, len(collections)),
		ch:          make(chan domain.ChangeEvent, subscriberBuffer),
	}
	for _, c := range collections {
		sub.collections[c] = struct{}{}
	}

	s.mu.Lock()
	s.subscribers[sub.id] = sub
	s.mu.Unlock()

	s.LogDebug(ctx, "Change feed subscription opened", "subscription_id", sub.id, "user_id", actor.UserID)
	return &portssvc.Subscription{ID: sub.id, C: sub.ch}, nil
}

// Unsubscribe tears down a registration. Safe to call twice. The channel is
// closed under the same mutex that guards delivery, so a send on a closed
// channel cannot occur.
func (s *changeFeedService) Unsubscribe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subscribers[id]
	if !ok {
		return
	}
	delete(s.subscribers, id)
	close(sub.ch)
}

// Publish routes an event to interested subscribers. Users-collection events
// are held back and coalesced; everything else is delivered immediately.
func (s *changeFeedService) Publish(event domain.ChangeEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	if event.Collection == "users" && s.debounce > 0 {
		s.deferDelivery(event)
		return
	}
	s.deliver(event)
}

// deferDelivery coalesces events sharing a visibility key and delivers the
// latest one after the debounce window. A burst of membership writes thus
// produces a single refetch signal.
func (s *changeFeedService) deferDelivery(event domain.ChangeEvent) {
	key := event.Collection + "|" + event.FamilyID + "|" + event.UserID

	s.pendingMu.Lock()
	_, alreadyQueued := s.pending[key]
	s.pending[key] = event
	s.pendingMu.Unlock()

	if alreadyQueued {
		return
	}

	time.AfterFunc(s.debounce, func() {
		s.pendingMu.Lock()
		latest, ok := s.pending[key]
		delete(s.pending, key)
		s.pendingMu.Unlock()
		if ok {
			s.deliver(latest)
		}
	})
}

// deliver sends to matching subscribers while holding the registration
// mutex: sends never block (full buffers drop), and an unsubscribed channel
// can only be closed under the same lock.
func (s *changeFeedService) deliver(event domain.ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subscribers {
		if !sub.wants(event) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			// Full buffer: drop. The subscriber already has an undrained
			// event that triggers the same refetch.
		}
	}
}
