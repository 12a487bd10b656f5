package subscription

import (
	"sync"
	"time"

	"github.com/VitaminP8/articlery/internal/model"
)

type SubscriptionManager struct {
	mu   sync.Mutex
	subs map[string][]chan *model.Comment // articleID -> список каналов подписчиков
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subs: make(map[string][]chan *model.Comment),
	}
}

func (m *SubscriptionManager) Subscribe(articleID string) (<-chan *model.Comment, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *model.Comment, 1) // Буфер 1, чтобы не блокировался писатель

	m.subs[articleID] = append(m.subs[articleID], ch)

	// функция для отписки
	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		subscribers := m.subs[articleID]
		for i, sub := range subscribers {
			if sub == ch {
				// Удаляем подписчика
				m.subs[articleID] = append(subscribers[:i], subscribers[i+1:]...)
				close(ch)
				break
			}
		}
	}

	return ch, cancel
}

func (m *SubscriptionManager) Publish(articleID string, comment *model.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subs[articleID] {
		select {
		case sub <- comment:
		case <-time.After(500 * time.Millisecond):
			// Если канал заполнен, ждем короткое время
		}
	}
}
