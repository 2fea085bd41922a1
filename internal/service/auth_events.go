package service

import (
	"sync"

	"github.com/SilverKain/Orthography/internal/model"
)

type AuthEventType string

const (
	SignedIn  AuthEventType = "signed_in"
	SignedOut AuthEventType = "signed_out"
)

// AuthEvent — смена состояния аутентификации: SignedIn несёт
// пользователя, SignedOut приходит без него.
type AuthEvent struct {
	Type AuthEventType
	User *model.UserInfo
}

// AuthBroker рассылает события смены состояния подписчикам. Каждая
// подписка получает собственный ключ; возвращённая функция снимает
// ровно её.
type AuthBroker struct {
	mu   sync.Mutex
	subs map[int]func(AuthEvent)
	next int
}

func NewAuthBroker() *AuthBroker {
	return &AuthBroker{subs: make(map[int]func(AuthEvent))}
}

func (b *AuthBroker) Subscribe(observer func(AuthEvent)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.subs[id] = observer

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

func (b *AuthBroker) publish(event AuthEvent) {
	b.mu.Lock()
	observers := make([]func(AuthEvent), 0, len(b.subs))
	for _, fn := range b.subs {
		observers = append(observers, fn)
	}
	b.mu.Unlock()

	for _, fn := range observers {
		fn(event)
	}
}
