package workflow_ser

import (
	"errors"

	"journal/models/ctypes"
)

// ErrInvalidTransition 当前状态、动作、角色的组合不在转移表中
var ErrInvalidTransition = errors.New("当前状态不允许该操作")

// Decision 校验通过后的转移结果
// Changed 为 false 表示动作不改变状态（如 send_comments）
type Decision struct {
	Next    ctypes.ArticleStatus
	Changed bool
}

// transitionRule 单个动作的转移规则
// from 为 nil 表示任意合法状态均可触发
type transitionRule struct {
	roles   map[ctypes.UserRole]struct{}
	from    map[ctypes.ArticleStatus]struct{}
	to      ctypes.ArticleStatus
	changed bool
}

// transitionTable 工作流转移表
// published 和 rejected 是终态，不出现在任何改变状态的 from 集合里
var transitionTable = map[ctypes.WorkflowAction]transitionRule{
	ctypes.ActionSubmit: {
		roles:   roleSet(ctypes.RoleAuthor),
		from:    statusSet(ctypes.StatusDraft),
		to:      ctypes.StatusSubmitted,
		changed: true,
	},
	ctypes.ActionAssignAssistantEditor: {
		roles:   roleSet(ctypes.RoleEditorInChief, ctypes.RoleAssistantEditor),
		from:    statusSet(ctypes.StatusSubmitted),
		to:      ctypes.StatusWithEditor,
		changed: true,
	},
	ctypes.ActionPublish: {
		roles:   roleSet(ctypes.RoleEditorInChief, ctypes.RolePatron, ctypes.RoleEditor),
		from:    statusSet(ctypes.StatusWithEditor, ctypes.StatusWithAdmin),
		to:      ctypes.StatusPublished,
		changed: true,
	},
	ctypes.ActionReject: {
		roles:   roleSet(ctypes.RoleEditorInChief, ctypes.RolePatron, ctypes.RoleEditor),
		from:    statusSet(ctypes.StatusWithEditor, ctypes.StatusWithAdmin, ctypes.StatusSubmitted),
		to:      ctypes.StatusRejected,
		changed: true,
	},
	ctypes.ActionSendComments: {
		roles:   roleSet(ctypes.RoleEditor),
		from:    nil, // 任意状态，不改变状态
		changed: false,
	},
}

func roleSet(roles ...ctypes.UserRole) map[ctypes.UserRole]struct{} {
	set := make(map[ctypes.UserRole]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func statusSet(statuses ...ctypes.ArticleStatus) map[ctypes.ArticleStatus]struct{} {
	set := make(map[ctypes.ArticleStatus]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

// Validate 纯函数校验 (当前状态, 动作, 角色) 是否允许
// 不在转移表中的组合一律返回 ErrInvalidTransition
func Validate(current ctypes.ArticleStatus, action ctypes.WorkflowAction, role ctypes.UserRole) (Decision, error) {
	if !current.Valid() || !action.Valid() || !role.Valid() {
		return Decision{}, ErrInvalidTransition
	}

	rule, ok := transitionTable[action]
	if !ok {
		return Decision{}, ErrInvalidTransition
	}
	if _, ok := rule.roles[role]; !ok {
		return Decision{}, ErrInvalidTransition
	}
	if rule.from != nil {
		if _, ok := rule.from[current]; !ok {
			return Decision{}, ErrInvalidTransition
		}
	}

	if !rule.changed {
		return Decision{Next: current, Changed: false}, nil
	}
	return Decision{Next: rule.to, Changed: true}, nil
}
