package memory

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/VitaminP8/articlery/internal/auth"
	"github.com/VitaminP8/articlery/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createUserContext создает контекст с принципалом для тестирования
func createUserContext(id uint, username string) context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{ID: id, Username: username})
}

func validInput(title string) model.ArticleInput {
	return model.ArticleInput{
		Title:    title,
		Content:  "Some content",
		Category: "Programming",
		Status:   "published",
		Tags:     []string{"api", "backend"},
	}
}

func TestArticleMemoryStorage_CreateArticle(t *testing.T) {
	t.Run("Successful article creation", func(t *testing.T) {
		storage := NewArticleMemoryStorage()
		ctx := createUserContext(1, "alice")

		a, err := storage.CreateArticle(ctx, validInput("My Article"))
		require.NoError(t, err)
		assert.NotEmpty(t, a.ID)
		assert.Equal(t, "My Article", a.Title)
		assert.Equal(t, "alice", a.Author)
		assert.Equal(t, "Programming", a.Category)
		assert.Contains(t, a.Image, "unsplash.com")
		assert.Contains(t, a.Image, "Programming")
		assert.NotEmpty(t, a.CreatedAt)
		assert.Empty(t, a.Comments)
		assert.Equal(t, 0, a.Likes)
	})

	t.Run("Unauthenticated creation fails", func(t *testing.T) {
		storage := NewArticleMemoryStorage()

		_, err := storage.CreateArticle(context.Background(), validInput("Anon"))
		assert.ErrorIs(t, err, model.ErrUnauthenticated)
	})

	t.Run("Invalid category is rejected", func(t *testing.T) {
		storage := NewArticleMemoryStorage()
		ctx := createUserContext(1, "alice")

		input := validInput("Bad Category")
		input.Category = "Cooking"

		_, err := storage.CreateArticle(ctx, input)
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("Missing tags are rejected", func(t *testing.T) {
		storage := NewArticleMemoryStorage()
		ctx := createUserContext(1, "alice")

		input := validInput("No Tags")
		input.Tags = nil

		_, err := storage.CreateArticle(ctx, input)
		assert.ErrorIs(t, err, model.ErrValidation)
	})
}

func TestArticleMemoryStorage_GetArticleById(t *testing.T) {
	storage := NewArticleMemoryStorage()
	ctx := createUserContext(1, "alice")

	created, err := storage.CreateArticle(ctx, validInput("Lookup"))
	require.NoError(t, err)

	t.Run("Existing article", func(t *testing.T) {
		a, err := storage.GetArticleById(created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, a.ID)
		assert.Equal(t, "Lookup", a.Title)
	})

	t.Run("Non-existent article", func(t *testing.T) {
		_, err := storage.GetArticleById("999")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("Returned article is a copy", func(t *testing.T) {
		a, err := storage.GetArticleById(created.ID)
		require.NoError(t, err)

		// правка копии не должна попасть в хранилище мимо SaveArticle
		a.Title = "Mutated"
		a.Comments = append(a.Comments, &model.Comment{ID: "x", Author: "alice", Text: "sneaky"})

		fresh, err := storage.GetArticleById(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Lookup", fresh.Title)
		assert.Empty(t, fresh.Comments)
	})
}

func TestArticleMemoryStorage_ListArticles(t *testing.T) {
	storage := NewArticleMemoryStorage()
	ctx := createUserContext(1, "alice")

	for i := 1; i <= 5; i++ {
		_, err := storage.CreateArticle(ctx, validInput("Article "+strconv.Itoa(i)))
		require.NoError(t, err)
	}

	t.Run("First page", func(t *testing.T) {
		page, err := storage.ListArticles(2, 0)
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "Article 1", page.Items[0].Title)
		assert.Equal(t, "Article 2", page.Items[1].Title)
		assert.True(t, page.HasMore)
		assert.Equal(t, 2, page.NextOffset)
	})

	t.Run("Last partial page", func(t *testing.T) {
		page, err := storage.ListArticles(2, 4)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Article 5", page.Items[0].Title)
		assert.False(t, page.HasMore)
	})

	t.Run("Offset past the end", func(t *testing.T) {
		page, err := storage.ListArticles(10, 100)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasMore)
	})
}

func TestArticleMemoryStorage_FilterArticles(t *testing.T) {
	storage := NewArticleMemoryStorage()
	ctx := createUserContext(1, "alice")

	design := validInput("Design Basics")
	design.Category = "Design"
	design.Tags = []string{"frontend"}
	_, err := storage.CreateArticle(ctx, design)
	require.NoError(t, err)

	draft := validInput("Unfinished Notes")
	draft.Status = "draft"
	_, err = storage.CreateArticle(ctx, draft)
	require.NoError(t, err)

	t.Run("Filter by category is case-insensitive", func(t *testing.T) {
		results, err := storage.FilterArticles(model.ArticleFilter{Category: "design"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Design Basics", results[0].Title)
	})

	t.Run("Filter by status", func(t *testing.T) {
		results, err := storage.FilterArticles(model.ArticleFilter{Status: "draft"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Unfinished Notes", results[0].Title)
	})

	t.Run("Search matches title substring", func(t *testing.T) {
		results, err := storage.FilterArticles(model.ArticleFilter{Search: "basics"})
		require.NoError(t, err)
		require.Len(t, results, 1)
	})

	t.Run("No matches return NotFound", func(t *testing.T) {
		_, err := storage.FilterArticles(model.ArticleFilter{Search: "nonexistent topic"})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("Unknown category is a validation error", func(t *testing.T) {
		_, err := storage.FilterArticles(model.ArticleFilter{Category: "Cooking"})
		assert.ErrorIs(t, err, model.ErrValidation)
	})
}

func TestArticleMemoryStorage_UpdateArticle(t *testing.T) {
	storage := NewArticleMemoryStorage()
	aliceCtx := createUserContext(1, "alice")

	created, err := storage.CreateArticle(aliceCtx, validInput("Original"))
	require.NoError(t, err)

	t.Run("Author updates own article", func(t *testing.T) {
		newTitle := "Renamed"
		updated, err := storage.UpdateArticle(aliceCtx, created.ID, model.ArticleUpdate{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		// остальные поля частичное обновление не трогает
		assert.Equal(t, created.Content, updated.Content)
	})

	t.Run("Non-author is forbidden", func(t *testing.T) {
		bobCtx := createUserContext(2, "bob")
		newTitle := "Stolen"

		_, err := storage.UpdateArticle(bobCtx, created.ID, model.ArticleUpdate{Title: &newTitle})
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("Invalid status is rejected", func(t *testing.T) {
		badStatus := "archived"
		_, err := storage.UpdateArticle(aliceCtx, created.ID, model.ArticleUpdate{Status: &badStatus})
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("Non-existent article", func(t *testing.T) {
		newTitle := "Ghost"
		_, err := storage.UpdateArticle(aliceCtx, "999", model.ArticleUpdate{Title: &newTitle})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestArticleMemoryStorage_DeleteArticleById(t *testing.T) {
	storage := NewArticleMemoryStorage()
	aliceCtx := createUserContext(1, "alice")

	created, err := storage.CreateArticle(aliceCtx, validInput("Doomed"))
	require.NoError(t, err)

	t.Run("Non-author is forbidden", func(t *testing.T) {
		bobCtx := createUserContext(2, "bob")
		err := storage.DeleteArticleById(bobCtx, created.ID)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("Author deletes own article", func(t *testing.T) {
		err := storage.DeleteArticleById(aliceCtx, created.ID)
		require.NoError(t, err)

		_, err = storage.GetArticleById(created.ID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("Non-existent article", func(t *testing.T) {
		err := storage.DeleteArticleById(aliceCtx, "999")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestArticleMemoryStorage_SaveArticle(t *testing.T) {
	storage := NewArticleMemoryStorage()
	ctx := createUserContext(1, "alice")

	created, err := storage.CreateArticle(ctx, validInput("Document"))
	require.NoError(t, err)

	t.Run("Save replaces the whole document", func(t *testing.T) {
		doc, err := storage.GetArticleById(created.ID)
		require.NoError(t, err)

		doc.Comments = append(doc.Comments, &model.Comment{
			ID:      "c1",
			Author:  "alice",
			Text:    "attached comment",
			Replies: []*model.Reply{},
		})
		doc.Likes = 3
		doc.Liked = true

		require.NoError(t, storage.SaveArticle(doc))

		saved, err := storage.GetArticleById(created.ID)
		require.NoError(t, err)
		require.Len(t, saved.Comments, 1)
		assert.Equal(t, "attached comment", saved.Comments[0].Text)
		assert.Equal(t, 3, saved.Likes)
		assert.True(t, saved.Liked)
	})

	t.Run("Save of unknown article fails", func(t *testing.T) {
		err := storage.SaveArticle(&model.Article{ID: "999", Author: "alice"})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestArticleMemoryStorage_ConcurrentOperations(t *testing.T) {
	storage := NewArticleMemoryStorage()
	ctx := createUserContext(1, "alice")

	t.Run("Concurrent article creation", func(t *testing.T) {
		var wg sync.WaitGroup
		numGoroutines := 10

		for i := 0; i < numGoroutines; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()

				a, err := storage.CreateArticle(ctx, validInput("Concurrent "+strconv.Itoa(idx)))
				assert.NoError(t, err)
				assert.NotNil(t, a)
			}(i)
		}

		wg.Wait()

		page, err := storage.ListArticles(numGoroutines*2, 0)
		require.NoError(t, err)
		assert.Len(t, page.Items, numGoroutines)

		// id должны быть уникальны
		seen := make(map[string]bool)
		for _, a := range page.Items {
			assert.False(t, seen[a.ID])
			seen[a.ID] = true
		}
	})
}
