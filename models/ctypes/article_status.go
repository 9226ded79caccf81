package ctypes

// ArticleStatus 稿件状态，状态闭集，只允许通过工作流变更
type ArticleStatus string

const (
	StatusDraft       ArticleStatus = "draft"        // 草稿
	StatusSubmitted   ArticleStatus = "submitted"    // 已投稿
	StatusUnderReview ArticleStatus = "under_review" // 外审中
	StatusWithEditor  ArticleStatus = "with_editor"  // 编辑处理中
	StatusWithAdmin   ArticleStatus = "with_admin"   // 管理员处理中
	StatusAccepted    ArticleStatus = "accepted"     // 已录用
	StatusPublished   ArticleStatus = "published"    // 已发表
	StatusRejected    ArticleStatus = "rejected"     // 已退稿
)

var allStatuses = map[ArticleStatus]struct{}{
	StatusDraft:       {},
	StatusSubmitted:   {},
	StatusUnderReview: {},
	StatusWithEditor:  {},
	StatusWithAdmin:   {},
	StatusAccepted:    {},
	StatusPublished:   {},
	StatusRejected:    {},
}

// Valid 状态是否在闭集内
func (s ArticleStatus) Valid() bool {
	_, ok := allStatuses[s]
	return ok
}

// Terminal 是否终态，终态不再有出边
func (s ArticleStatus) Terminal() bool {
	return s == StatusPublished || s == StatusRejected
}
