package subscription

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/VitaminP8/articlery/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionManager_Subscribe(t *testing.T) {
	t.Run("Should create a subscription channel", func(t *testing.T) {
		manager := NewSubscriptionManager()
		articleID := "123"

		ch, cancel := manager.Subscribe(articleID)
		assert.NotNil(t, ch)
		assert.NotNil(t, cancel)

		manager.mu.Lock()
		subscribers, exists := manager.subs[articleID]
		manager.mu.Unlock()
		assert.True(t, exists)
		assert.Len(t, subscribers, 1)

		// Вызываем отмену подписки
		cancel()

		manager.mu.Lock()
		subscribers, exists = manager.subs[articleID]
		manager.mu.Unlock()
		assert.True(t, exists)
		assert.Len(t, subscribers, 0)
	})

	t.Run("Multiple subscriptions to the same article", func(t *testing.T) {
		manager := NewSubscriptionManager()
		articleID := "123"

		// Создаем 3 подписки
		_, cancel1 := manager.Subscribe(articleID)
		_, cancel2 := manager.Subscribe(articleID)
		_, cancel3 := manager.Subscribe(articleID)

		manager.mu.Lock()
		subscribers, exists := manager.subs[articleID]
		manager.mu.Unlock()
		assert.True(t, exists)
		assert.Len(t, subscribers, 3)

		// Отменяем вторую подписку
		cancel2()

		manager.mu.Lock()
		subscribers, exists = manager.subs[articleID]
		manager.mu.Unlock()
		assert.True(t, exists)
		assert.Len(t, subscribers, 2)

		// Отменяем остальные подписки
		cancel1()
		cancel3()

		manager.mu.Lock()
		subscribers, exists = manager.subs[articleID]
		manager.mu.Unlock()
		assert.True(t, exists)
		assert.Len(t, subscribers, 0)
	})

	t.Run("Subscriptions to different articles", func(t *testing.T) {
		manager := NewSubscriptionManager()

		_, cancel1 := manager.Subscribe("article1")
		_, cancel2 := manager.Subscribe("article2")
		_, cancel3 := manager.Subscribe("article3")

		manager.mu.Lock()
		assert.Len(t, manager.subs, 3)
		manager.mu.Unlock()

		cancel1()
		cancel2()
		cancel3()

		manager.mu.Lock()
		assert.Len(t, manager.subs["article1"], 0)
		assert.Len(t, manager.subs["article2"], 0)
		assert.Len(t, manager.subs["article3"], 0)
		manager.mu.Unlock()
	})
}

func TestSubscriptionManager_Publish(t *testing.T) {
	t.Run("Should send comment to subscribers", func(t *testing.T) {
		manager := NewSubscriptionManager()
		articleID := "123"

		ch, cancel := manager.Subscribe(articleID)
		defer cancel()

		comment := &model.Comment{
			ID:        "456",
			Author:    "alice",
			Text:      "Test comment",
			CreatedAt: time.Now().Format(time.RFC3339),
		}

		// Публикуем комментарий
		manager.Publish(articleID, comment)

		// Проверяем, что комментарий получен
		select {
		case receivedComment := <-ch:
			assert.Equal(t, comment, receivedComment)
		case <-time.After(time.Second):
			t.Fatal("Timed out waiting for comment")
		}
	})

	t.Run("Multiple subscribers should all receive the comment", func(t *testing.T) {
		manager := NewSubscriptionManager()
		articleID := "123"

		ch1, cancel1 := manager.Subscribe(articleID)
		ch2, cancel2 := manager.Subscribe(articleID)
		ch3, cancel3 := manager.Subscribe(articleID)
		defer cancel1()
		defer cancel2()
		defer cancel3()

		comment := &model.Comment{
			ID:        "456",
			Author:    "alice",
			Text:      "Test comment",
			CreatedAt: time.Now().Format(time.RFC3339),
		}

		manager.Publish(articleID, comment)

		for i, ch := range []<-chan *model.Comment{ch1, ch2, ch3} {
			select {
			case receivedComment := <-ch:
				assert.Equal(t, comment, receivedComment, "Subscriber %d did not receive correct comment", i+1)
			case <-time.After(time.Second):
				t.Fatalf("Subscriber %d timed out waiting for comment", i+1)
			}
		}
	})

	t.Run("Should only send to subscribers of the specific article", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch1, cancel1 := manager.Subscribe("article1")
		ch2, cancel2 := manager.Subscribe("article2")
		defer cancel1()
		defer cancel2()

		comment := &model.Comment{
			ID:        "456",
			Author:    "alice",
			Text:      "Test comment",
			CreatedAt: time.Now().Format(time.RFC3339),
		}

		manager.Publish("article1", comment)

		select {
		case receivedComment := <-ch1:
			assert.Equal(t, comment, receivedComment)
		case <-time.After(time.Second):
			t.Fatal("Subscriber of article1 timed out waiting for comment")
		}

		select {
		case <-ch2:
			t.Fatal("Subscriber of article2 should not receive the comment")
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("Publishing to an article with no subscribers should not panic", func(t *testing.T) {
		manager := NewSubscriptionManager()

		comment := &model.Comment{
			ID:        "456",
			Author:    "alice",
			Text:      "Test comment",
			CreatedAt: time.Now().Format(time.RFC3339),
		}

		assert.NotPanics(t, func() {
			manager.Publish("article1", comment)
		})
	})
}

func TestSubscriptionManager_Concurrent(t *testing.T) {
	t.Run("Concurrent subscriptions and publications", func(t *testing.T) {
		manager := NewSubscriptionManager()
		articleID := "123"

		numSubscribers := 10
		numPublications := 5

		var wg sync.WaitGroup

		chans := make([]<-chan *model.Comment, numSubscribers)
		cancels := make([]func(), numSubscribers)

		// Счетчик полученных комментариев для каждого подписчика
		received := make([]int, numSubscribers)

		var mu sync.Mutex

		for i := 0; i < numSubscribers; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				ch, cancel := manager.Subscribe(articleID)
				chans[idx] = ch
				cancels[idx] = cancel

				// Запускаем горутину для чтения из канала
				go func(idx int, ch <-chan *model.Comment) {
					for comment := range ch {
						require.NotEmpty(t, comment.ID)
						mu.Lock()
						received[idx]++
						mu.Unlock()
					}
				}(idx, ch)
			}(i)
		}

		// Ожидаем завершения подписок
		wg.Wait()

		// Публикуем комментарии
		for i := 0; i < numPublications; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				comment := &model.Comment{
					ID:        strconv.Itoa(1000 + idx),
					Author:    "alice",
					Text:      "Concurrent test comment " + strconv.Itoa(idx),
					CreatedAt: time.Now().Format(time.RFC3339),
				}
				manager.Publish(articleID, comment)
			}(i)
		}

		wg.Wait()

		// Даем время на обработку всех сообщений
		time.Sleep(1000 * time.Millisecond)

		// Отменяем все подписки
		for _, cancel := range cancels {
			cancel()
		}

		// Проверяем, что все подписчики получили все публикации
		mu.Lock()
		for i := 0; i < numSubscribers; i++ {
			assert.Equal(t, numPublications, received[i], "Subscriber %d did not receive all publications", i)
		}
		mu.Unlock()
	})
}
