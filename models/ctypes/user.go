package ctypes

// UserRole 用户角色
type UserRole string

const (
	RoleAuthor          UserRole = "author"           // 作者
	RoleReviewer        UserRole = "reviewer"         // 审稿人
	RoleEditor          UserRole = "editor"           // 编辑
	RoleEditorInChief   UserRole = "editor_in_chief"  // 主编
	RoleAssistantEditor UserRole = "assistant_editor" // 编辑助理
	RoleAdmin           UserRole = "administrator"    // 管理员
	RolePatron          UserRole = "patron"           // 理事
	RolePatronInChief   UserRole = "patron_in_chief"  // 理事长
)

// allRoles 角色闭集
var allRoles = map[UserRole]struct{}{
	RoleAuthor:          {},
	RoleReviewer:        {},
	RoleEditor:          {},
	RoleEditorInChief:   {},
	RoleAssistantEditor: {},
	RoleAdmin:           {},
	RolePatron:          {},
	RolePatronInChief:   {},
}

// Valid 角色是否在闭集内
func (r UserRole) Valid() bool {
	_, ok := allRoles[r]
	return ok
}

// Editorial 是否编辑部角色（可查看全部非草稿稿件）
func (r UserRole) Editorial() bool {
	switch r {
	case RoleEditor, RoleEditorInChief, RoleAssistantEditor, RoleAdmin, RolePatron, RolePatronInChief:
		return true
	}
	return false
}
