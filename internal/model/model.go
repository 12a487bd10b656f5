package model

// User - пользователь без пароля (наружу пароль не отдаем)
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Article - целый документ статьи вместе с деревом комментариев.
// Документ всегда читается и сохраняется как одно целое.
type Article struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    string     `json:"author"`
	Category  string     `json:"category"`
	Status    string     `json:"status"`
	Tags      []string   `json:"tags"`
	Image     string     `json:"image"`
	Likes     int        `json:"likes"`
	Liked     bool       `json:"liked"`
	Comments  []*Comment `json:"comments"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

type Comment struct {
	ID        string   `json:"id"`
	Author    string   `json:"author"`
	Text      string   `json:"text"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
	Liked     bool     `json:"liked"`
	Replies   []*Reply `json:"replies"`
}

type Reply struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	Liked     bool   `json:"liked"`
}

// ArticleConnection - страница статей для пагинации
type ArticleConnection struct {
	Items      []*Article `json:"items"`
	HasMore    bool       `json:"hasMore"`
	NextOffset int        `json:"nextOffset"`
}

type ArticleInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Status   string   `json:"status"`
	Tags     []string `json:"tags"`
}

// ArticleUpdate - частичное обновление (nil означает "не трогать поле")
type ArticleUpdate struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	Category *string  `json:"category"`
	Status   *string  `json:"status"`
	Tags     []string `json:"tags"`
}

type ArticleFilter struct {
	Category string
	Status   string
	Tag      string
	Search   string
}

// IsEmpty сообщает, задан ли хотя бы один фильтр
func (f ArticleFilter) IsEmpty() bool {
	return f.Category == "" && f.Status == "" && f.Tag == "" && f.Search == ""
}

// Clone делает глубокую копию документа.
// Нужна хранилищам, чтобы читатель не мутировал сохраненное состояние до SaveArticle.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Tags = append([]string(nil), a.Tags...)
	cp.Comments = make([]*Comment, 0, len(a.Comments))
	for _, c := range a.Comments {
		cp.Comments = append(cp.Comments, c.Clone())
	}
	return &cp
}

func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Replies = make([]*Reply, 0, len(c.Replies))
	for _, r := range c.Replies {
		rc := *r
		cp.Replies = append(cp.Replies, &rc)
	}
	return &cp
}
