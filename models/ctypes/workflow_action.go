package ctypes

// WorkflowAction 工作流动作
type WorkflowAction string

const (
	ActionSubmit                WorkflowAction = "submit"                  // 投稿
	ActionAssignAssistantEditor WorkflowAction = "assign_assistant_editor" // 指派编辑
	ActionPublish               WorkflowAction = "publish"                 // 发表
	ActionReject                WorkflowAction = "reject"                  // 退稿
	ActionSendComments          WorkflowAction = "send_comments"           // 发送审稿意见
)

var allActions = map[WorkflowAction]struct{}{
	ActionSubmit:                {},
	ActionAssignAssistantEditor: {},
	ActionPublish:               {},
	ActionReject:                {},
	ActionSendComments:          {},
}

// Valid 动作是否在闭集内
func (a WorkflowAction) Valid() bool {
	_, ok := allActions[a]
	return ok
}
