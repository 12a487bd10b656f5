package engagement

// TargetKind различает, к какому уровню дерева адресована операция.
type TargetKind int

const (
	TargetArticle TargetKind = iota
	TargetComment
	TargetReply
)

// Target - явный адрес сущности внутри документа статьи.
// Разбирается один раз на границе HTTP, дальше ветвление только по Kind.
type Target struct {
	Kind      TargetKind
	CommentID string
	ReplyID   string
}

func ArticleTarget() Target {
	return Target{Kind: TargetArticle}
}

func CommentTarget(commentID string) Target {
	return Target{Kind: TargetComment, CommentID: commentID}
}

func ReplyTarget(commentID, replyID string) Target {
	return Target{Kind: TargetReply, CommentID: commentID, ReplyID: replyID}
}
