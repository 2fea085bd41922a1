package service

import (
	"testing"

	"github.com/SilverKain/Orthography/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAuthBrokerPublish(t *testing.T) {
	broker := NewAuthBroker()

	var events []AuthEvent
	unsubscribe := broker.Subscribe(func(e AuthEvent) {
		events = append(events, e)
	})

	broker.publish(AuthEvent{Type: SignedIn, User: &model.UserInfo{UID: "u1"}})
	broker.publish(AuthEvent{Type: SignedOut})

	assert.Len(t, events, 2)
	assert.Equal(t, SignedIn, events[0].Type)
	assert.Equal(t, "u1", events[0].User.UID)
	assert.Equal(t, SignedOut, events[1].Type)
	assert.Nil(t, events[1].User)

	// после отписки события не приходят
	unsubscribe()
	broker.publish(AuthEvent{Type: SignedIn})
	assert.Len(t, events, 2)
}

func TestAuthBrokerMultipleSubscribers(t *testing.T) {
	broker := NewAuthBroker()

	first, second := 0, 0
	unsubFirst := broker.Subscribe(func(AuthEvent) { first++ })
	broker.Subscribe(func(AuthEvent) { second++ })

	broker.publish(AuthEvent{Type: SignedIn})
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)

	// отписка снимает только свою подписку
	unsubFirst()
	broker.publish(AuthEvent{Type: SignedOut})
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}
