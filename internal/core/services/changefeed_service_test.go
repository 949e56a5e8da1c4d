package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/core/services"
)

type ChangeFeedServiceTestSuite struct {
	suite.Suite
	feed portssvc.ChangeFeedSvc
}

func (suite *ChangeFeedServiceTestSuite) SetupTest() {
	suite.feed = services.NewChangeFeedService(20 * time.Millisecond)
}

func receiveEvent(suite *ChangeFeedServiceTestSuite, ch <-chan domain.ChangeEvent) domain.ChangeEvent {
	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		suite.FailNow("timed out waiting for change event")
		return domain.ChangeEvent{}
	}
}

func assertNoEvent(suite *ChangeFeedServiceTestSuite, ch <-chan domain.ChangeEvent, wait time.Duration) {
	select {
	case event := <-ch:
		suite.FailNowf("unexpected event", "got %+v", event)
	case <-time.After(wait):
	}
}

func (suite *ChangeFeedServiceTestSuite) TestPublish_FamilyMemberReceivesFamilyEvent() {
	familyID := uuid.NewString()
	sub, err := suite.feed.Subscribe(context.Background(), ibuInFamily(familyID))
	suite.Require().NoError(err)
	defer suite.feed.Unsubscribe(sub.ID)

	suite.feed.Publish(domain.ChangeEvent{
		Collection: "orders",
		Op:         domain.OpUpdate,
		RecordID:   uuid.NewString(),
		UserID:     "ayah-user-id",
		FamilyID:   familyID,
	})

	event := receiveEvent(suite, sub.C)
	suite.Equal("orders", event.Collection)
	suite.Equal(familyID, event.FamilyID)
	suite.False(event.OccurredAt.IsZero())
}

func (suite *ChangeFeedServiceTestSuite) TestPublish_OtherFamilyEventNotDelivered() {
	sub, err := suite.feed.Subscribe(context.Background(), ibuInFamily(uuid.NewString()))
	suite.Require().NoError(err)
	defer suite.feed.Unsubscribe(sub.ID)

	suite.feed.Publish(domain.ChangeEvent{
		Collection: "orders",
		Op:         domain.OpInsert,
		RecordID:   uuid.NewString(),
		UserID:     "stranger",
		FamilyID:   uuid.NewString(),
	})

	assertNoEvent(suite, sub.C, 50*time.Millisecond)
}

func (suite *ChangeFeedServiceTestSuite) TestPublish_SoloUserReceivesOwnEventsOnly() {
	solo := soloUser(domain.RoleIbu)
	sub, err := suite.feed.Subscribe(context.Background(), solo)
	suite.Require().NoError(err)
	defer suite.feed.Unsubscribe(sub.ID)

	suite.feed.Publish(domain.ChangeEvent{
		Collection: "debts",
		Op:         domain.OpInsert,
		RecordID:   uuid.NewString(),
		UserID:     solo.UserID,
	})

	event := receiveEvent(suite, sub.C)
	suite.Equal(solo.UserID, event.UserID)
}

func (suite *ChangeFeedServiceTestSuite) TestSubscribe_CollectionFilter() {
	familyID := uuid.NewString()
	sub, err := suite.feed.Subscribe(context.Background(), ayahInFamily(familyID), "orders")
	suite.Require().NoError(err)
	defer suite.feed.Unsubscribe(sub.ID)

	suite.feed.Publish(domain.ChangeEvent{
		Collection: "debts",
		Op:         domain.OpInsert,
		RecordID:   uuid.NewString(),
		FamilyID:   familyID,
	})
	suite.feed.Publish(domain.ChangeEvent{
		Collection: "orders",
		Op:         domain.OpInsert,
		RecordID:   uuid.NewString(),
		FamilyID:   familyID,
	})

	event := receiveEvent(suite, sub.C)
	suite.Equal("orders", event.Collection)
}

func (suite *ChangeFeedServiceTestSuite) TestPublish_UsersEventsCoalescedWithinDebounce() {
	familyID := uuid.NewString()
	sub, err := suite.feed.Subscribe(context.Background(), ibuInFamily(familyID))
	suite.Require().NoError(err)
	defer suite.feed.Unsubscribe(sub.ID)

	// A burst of membership writes sharing one visibility key.
	for i := 0; i < 5; i++ {
		suite.feed.Publish(domain.ChangeEvent{
			Collection: "users",
			Op:         domain.OpUpdate,
			RecordID:   uuid.NewString(),
			UserID:     "ayah-user-id",
			FamilyID:   familyID,
		})
	}

	first := receiveEvent(suite, sub.C)
	suite.Equal("users", first.Collection)
	assertNoEvent(suite, sub.C, 60*time.Millisecond)
}

func (suite *ChangeFeedServiceTestSuite) TestPublish_UsersEventDelayedByDebounce() {
	familyID := uuid.NewString()
	sub, err := suite.feed.Subscribe(context.Background(), ayahInFamily(familyID))
	suite.Require().NoError(err)
	defer suite.feed.Unsubscribe(sub.ID)

	suite.feed.Publish(domain.ChangeEvent{
		Collection: "users",
		Op:         domain.OpUpdate,
		RecordID:   uuid.NewString(),
		FamilyID:   familyID,
	})

	assertNoEvent(suite, sub.C, 5*time.Millisecond)
	receiveEvent(suite, sub.C)
}

func (suite *ChangeFeedServiceTestSuite) TestUnsubscribe_Idempotent() {
	sub, err := suite.feed.Subscribe(context.Background(), soloUser(domain.RoleAyah))
	suite.Require().NoError(err)

	suite.feed.Unsubscribe(sub.ID)
	suite.feed.Unsubscribe(sub.ID)

	_, open := <-sub.C
	suite.False(open)
}

// A disconnecting client unsubscribes while the listener goroutine is still
// publishing. Delivery and teardown share a mutex, so the publisher must
// never hit a closed channel.
func (suite *ChangeFeedServiceTestSuite) TestUnsubscribe_ConcurrentWithPublish() {
	const rounds = 200
	familyID := uuid.NewString()
	actor := ibuInFamily(familyID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < rounds; i++ {
			suite.feed.Publish(domain.ChangeEvent{
				Collection: "orders",
				Op:         domain.OpUpdate,
				RecordID:   uuid.NewString(),
				UserID:     actor.UserID,
				FamilyID:   familyID,
			})
		}
	}()

	for i := 0; i < rounds; i++ {
		sub, err := suite.feed.Subscribe(context.Background(), actor)
		suite.Require().NoError(err)
		suite.feed.Unsubscribe(sub.ID)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		suite.FailNow("publisher did not finish")
	}
}

func TestChangeFeedServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChangeFeedServiceTestSuite))
}
