package workflow_ser

import (
	"errors"
	"testing"

	"journal/models/ctypes"
)

var allStatuses = []ctypes.ArticleStatus{
	ctypes.StatusDraft,
	ctypes.StatusSubmitted,
	ctypes.StatusUnderReview,
	ctypes.StatusWithEditor,
	ctypes.StatusWithAdmin,
	ctypes.StatusAccepted,
	ctypes.StatusPublished,
	ctypes.StatusRejected,
}

var allActions = []ctypes.WorkflowAction{
	ctypes.ActionSubmit,
	ctypes.ActionAssignAssistantEditor,
	ctypes.ActionPublish,
	ctypes.ActionReject,
	ctypes.ActionSendComments,
}

var allRoles = []ctypes.UserRole{
	ctypes.RoleAuthor,
	ctypes.RoleReviewer,
	ctypes.RoleEditor,
	ctypes.RoleEditorInChief,
	ctypes.RoleAssistantEditor,
	ctypes.RoleAdmin,
	ctypes.RolePatron,
	ctypes.RolePatronInChief,
}

type triple struct {
	status ctypes.ArticleStatus
	action ctypes.WorkflowAction
	role   ctypes.UserRole
}

// allowedTriples 独立于实现重新展开的转移表，用于穷举比对
func allowedTriples() map[triple]Decision {
	allowed := make(map[triple]Decision)

	add := func(statuses []ctypes.ArticleStatus, action ctypes.WorkflowAction, roles []ctypes.UserRole, next ctypes.ArticleStatus, changed bool) {
		for _, s := range statuses {
			for _, r := range roles {
				key := triple{s, action, r}
				if changed {
					allowed[key] = Decision{Next: next, Changed: true}
				} else {
					allowed[key] = Decision{Next: s, Changed: false}
				}
			}
		}
	}

	add([]ctypes.ArticleStatus{ctypes.StatusDraft},
		ctypes.ActionSubmit,
		[]ctypes.UserRole{ctypes.RoleAuthor},
		ctypes.StatusSubmitted, true)

	add([]ctypes.ArticleStatus{ctypes.StatusSubmitted},
		ctypes.ActionAssignAssistantEditor,
		[]ctypes.UserRole{ctypes.RoleEditorInChief, ctypes.RoleAssistantEditor},
		ctypes.StatusWithEditor, true)

	add([]ctypes.ArticleStatus{ctypes.StatusWithEditor, ctypes.StatusWithAdmin},
		ctypes.ActionPublish,
		[]ctypes.UserRole{ctypes.RoleEditorInChief, ctypes.RolePatron, ctypes.RoleEditor},
		ctypes.StatusPublished, true)

	add([]ctypes.ArticleStatus{ctypes.StatusWithEditor, ctypes.StatusWithAdmin, ctypes.StatusSubmitted},
		ctypes.ActionReject,
		[]ctypes.UserRole{ctypes.RoleEditorInChief, ctypes.RolePatron, ctypes.RoleEditor},
		ctypes.StatusRejected, true)

	add(allStatuses,
		ctypes.ActionSendComments,
		[]ctypes.UserRole{ctypes.RoleEditor},
		"", false)

	return allowed
}

// 穷举所有 (状态, 动作, 角色) 组合，表内组合必须给出表中的下一状态，
// 表外组合必须一律拒绝
func TestValidateExhaustive(t *testing.T) {
	allowed := allowedTriples()

	for _, status := range allStatuses {
		for _, action := range allActions {
			for _, role := range allRoles {
				decision, err := Validate(status, action, role)
				want, ok := allowed[triple{status, action, role}]

				if !ok {
					if !errors.Is(err, ErrInvalidTransition) {
						t.Errorf("Validate(%s, %s, %s) = (%+v, %v)，期望 ErrInvalidTransition",
							status, action, role, decision, err)
					}
					continue
				}

				if err != nil {
					t.Errorf("Validate(%s, %s, %s) 意外失败: %v", status, action, role, err)
					continue
				}
				if decision != want {
					t.Errorf("Validate(%s, %s, %s) = %+v，期望 %+v",
						status, action, role, decision, want)
				}
			}
		}
	}
}

// 终态没有任何改变状态的出边
func TestValidateTerminalAbsorbing(t *testing.T) {
	for _, status := range []ctypes.ArticleStatus{ctypes.StatusPublished, ctypes.StatusRejected} {
		for _, action := range allActions {
			for _, role := range allRoles {
				decision, err := Validate(status, action, role)
				if err != nil {
					continue
				}
				if decision.Changed {
					t.Errorf("终态 %s 不应存在改变状态的转移: %s by %s → %s",
						status, action, role, decision.Next)
				}
			}
		}
	}
}

// 非法输入一律拒绝
func TestValidateInvalidInputs(t *testing.T) {
	cases := []struct {
		name   string
		status ctypes.ArticleStatus
		action ctypes.WorkflowAction
		role   ctypes.UserRole
	}{
		{"未知状态", "archived", ctypes.ActionSubmit, ctypes.RoleAuthor},
		{"未知动作", ctypes.StatusDraft, "unsubmit", ctypes.RoleAuthor},
		{"未知角色", ctypes.StatusDraft, ctypes.ActionSubmit, "superuser"},
		{"空状态", "", ctypes.ActionSubmit, ctypes.RoleAuthor},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Validate(tc.status, tc.action, tc.role); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("期望 ErrInvalidTransition，得到 %v", err)
			}
		})
	}
}

// 孤立状态 under_review 和 accepted 只有 send_comments 可达
func TestValidateOrphanStatuses(t *testing.T) {
	for _, status := range []ctypes.ArticleStatus{ctypes.StatusUnderReview, ctypes.StatusAccepted} {
		for _, action := range allActions {
			for _, role := range allRoles {
				decision, err := Validate(status, action, role)
				if err != nil {
					continue
				}
				if action != ctypes.ActionSendComments || decision.Changed {
					t.Errorf("状态 %s 不应允许 %s by %s", status, action, role)
				}
			}
		}
	}
}
