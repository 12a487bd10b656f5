package mocks

import (
	"sync"

	"github.com/VitaminP8/articlery/internal/model"
)

// MockSubscriptionManager реализует subscription.Manager для тестирования.
// Помимо доставки в каналы запоминает все опубликованные комментарии.
type MockSubscriptionManager struct {
	mu            sync.Mutex
	subs          map[string][]chan *model.Comment
	notifications map[string][]*model.Comment
}

func NewMockSubscriptionManager() *MockSubscriptionManager {
	return &MockSubscriptionManager{
		subs:          make(map[string][]chan *model.Comment),
		notifications: make(map[string][]*model.Comment),
	}
}

func (m *MockSubscriptionManager) Subscribe(articleID string) (<-chan *model.Comment, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *model.Comment, 10)
	m.subs[articleID] = append(m.subs[articleID], ch)

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		subscribers := m.subs[articleID]
		for i, sub := range subscribers {
			if sub == ch {
				m.subs[articleID] = append(subscribers[:i], subscribers[i+1:]...)
				close(ch)
				break
			}
		}
	}

	return ch, cancel
}

func (m *MockSubscriptionManager) Publish(articleID string, comment *model.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notifications[articleID] = append(m.notifications[articleID], comment)

	for _, sub := range m.subs[articleID] {
		select {
		case sub <- comment:
		default:
			// переполненный канал в тестах не блокируем
		}
	}
}

// GetNotificationsForArticle вспомогательный метод для тестирования
func (m *MockSubscriptionManager) GetNotificationsForArticle(articleID string) []*model.Comment {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*model.Comment(nil), m.notifications[articleID]...)
}
