package subscription

import "github.com/VitaminP8/articlery/internal/model"

type Manager interface {
	Subscribe(articleID string) (<-chan *model.Comment, func())
	Publish(articleID string, comment *model.Comment)
}
