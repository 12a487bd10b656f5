package article

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/VitaminP8/articlery/internal/model"
)

// Допустимые значения справочных полей статьи
var (
	AllowedCategories = []string{"Programming", "Technology", "Design", "Web Developement"}
	AllowedStatuses   = []string{"draft", "published", "achieve"}
	AllowedTags       = []string{"api", "node", "frontend", "backend"}
)

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func containsFold(list []string, value string) bool {
	for _, v := range list {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// ValidateInput проверяет поля при создании статьи
func ValidateInput(input model.ArticleInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", model.ErrValidation)
	}
	if strings.TrimSpace(input.Content) == "" {
		return fmt.Errorf("%w: content is required", model.ErrValidation)
	}
	if strings.TrimSpace(input.Category) == "" {
		return fmt.Errorf("%w: category is required", model.ErrValidation)
	}
	if !contains(AllowedCategories, input.Category) {
		return fmt.Errorf("%w: invalid category provided", model.ErrValidation)
	}
	if strings.TrimSpace(input.Status) == "" {
		return fmt.Errorf("%w: status is required", model.ErrValidation)
	}
	if !contains(AllowedStatuses, input.Status) {
		return fmt.Errorf("%w: invalid status provided", model.ErrValidation)
	}
	if len(input.Tags) == 0 {
		return fmt.Errorf("%w: at least one tag is required", model.ErrValidation)
	}
	for _, tag := range input.Tags {
		if !contains(AllowedTags, tag) {
			return fmt.Errorf("%w: invalid tag(s) provided", model.ErrValidation)
		}
	}
	return nil
}

// ValidateUpdate проверяет только переданные поля частичного обновления
func ValidateUpdate(input model.ArticleUpdate) error {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return fmt.Errorf("%w: title is required", model.ErrValidation)
	}
	if input.Content != nil && strings.TrimSpace(*input.Content) == "" {
		return fmt.Errorf("%w: content is required", model.ErrValidation)
	}
	if input.Category != nil && !contains(AllowedCategories, *input.Category) {
		return fmt.Errorf("%w: invalid category provided", model.ErrValidation)
	}
	if input.Status != nil && !contains(AllowedStatuses, *input.Status) {
		return fmt.Errorf("%w: invalid status provided", model.ErrValidation)
	}
	for _, tag := range input.Tags {
		if !contains(AllowedTags, tag) {
			return fmt.Errorf("%w: invalid tag(s) provided", model.ErrValidation)
		}
	}
	return nil
}

// ValidateFilter отклоняет значения вне справочников (регистр не учитывается)
func ValidateFilter(f model.ArticleFilter) error {
	if f.Category != "" && !containsFold(AllowedCategories, f.Category) {
		return fmt.Errorf("%w: invalid category: %s", model.ErrValidation, f.Category)
	}
	if f.Status != "" && !containsFold(AllowedStatuses, f.Status) {
		return fmt.Errorf("%w: invalid status: %s", model.ErrValidation, f.Status)
	}
	if f.Tag != "" && !containsFold(AllowedTags, f.Tag) {
		return fmt.Errorf("%w: invalid tag: %s", model.ErrValidation, f.Tag)
	}
	return nil
}

// MatchesFilter проверяет статью против фильтра.
// category/status/tags сравниваются точно, search ищет подстроку
// в заголовке, тексте и тегах.
func MatchesFilter(a *model.Article, f model.ArticleFilter) bool {
	if f.Category != "" && !strings.EqualFold(a.Category, f.Category) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(a.Status, f.Status) {
		return false
	}
	if f.Tag != "" && !containsFold(a.Tags, f.Tag) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Title), needle) &&
			!strings.Contains(strings.ToLower(a.Content), needle) &&
			!tagsContain(a.Tags, needle) {
			return false
		}
	}
	return true
}

func tagsContain(tags []string, needle string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// ImageURL подбирает картинку по категории либо первому слову заголовка
func ImageURL(title, category string) string {
	query := category
	if query == "" {
		query = "random"
		if fields := strings.Fields(title); len(fields) > 0 {
			query = fields[0]
		}
	}
	return "https://unsplash.com/800x600/?" + url.QueryEscape(query)
}
