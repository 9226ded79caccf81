package workflow_ser

import (
	"errors"
	"fmt"

	"journal/models"
	"journal/models/ctypes"

	"go.uber.org/zap"
)

// ErrNotArticleAuthor 投稿动作只允许稿件作者本人发起
var ErrNotArticleAuthor = errors.New("只有作者本人可以投稿")

// ArticleStore 稿件存取接口，状态写入带乐观锁版本条件
type ArticleStore interface {
	Get(id string) (*models.ArticleModel, error)
	UpdateStatus(id string, version int64, to ctypes.ArticleStatus, extra map[string]interface{}) error
}

// NotificationEmitter 通知发送接口
// recipientID 为 0 时按 recipientRole 广播
type NotificationEmitter interface {
	Notify(recipientID uint, recipientRole ctypes.UserRole, title, message, articleID string) error
}

// ApplyRequest 工作流动作请求
type ApplyRequest struct {
	ArticleID     string
	Action        ctypes.WorkflowAction
	RequesterID   uint
	RequesterRole ctypes.UserRole
	ToUserID      uint   // assign_assistant_editor 的被指派人
	Comments      string // publish/reject/send_comments 附带的意见
}

// ApplyResult 工作流动作结果
// Notified 为 false 表示状态已变更但通知发送失败（部分成功）
type ApplyResult struct {
	NewStatus ctypes.ArticleStatus `json:"new_status"`
	Notified  bool                 `json:"notified"`
}

// Orchestrator 工作流编排器
// 先校验转移表，再带版本条件写状态，最后尽力发送通知
type Orchestrator struct {
	store   ArticleStore
	emitter NotificationEmitter
	log     *zap.SugaredLogger
}

func NewOrchestrator(store ArticleStore, emitter NotificationEmitter, log *zap.SugaredLogger) *Orchestrator {
	return &Orchestrator{store: store, emitter: emitter, log: log}
}

// ApplyAction 执行一次工作流动作
// 1. 读取稿件  2. 校验转移  3. 带版本条件写入新状态  4. 尽力通知  5. 返回新状态
func (o *Orchestrator) ApplyAction(req ApplyRequest) (ApplyResult, error) {
	// 1. 读取稿件
	article, err := o.store.Get(req.ArticleID)
	if err != nil {
		return ApplyResult{}, err
	}

	// 2. 校验转移表
	decision, err := Validate(article.Status, req.Action, req.RequesterRole)
	if err != nil {
		return ApplyResult{}, err
	}

	// 投稿只能由作者本人发起
	if req.Action == ctypes.ActionSubmit && req.RequesterID != article.AuthorID {
		return ApplyResult{}, ErrNotArticleAuthor
	}

	// 3. 状态写入，send_comments 不触碰稿件
	if decision.Changed {
		extra := o.buildExtra(req)
		if err := o.store.UpdateStatus(req.ArticleID, article.Version, decision.Next, extra); err != nil {
			return ApplyResult{}, err
		}
	}

	// 4. 尽力发送通知，失败不回滚状态变更
	notified := true
	if err := o.notify(article, req, decision); err != nil {
		notified = false
		o.log.Error("发送工作流通知失败",
			zap.String("articleID", req.ArticleID),
			zap.String("action", string(req.Action)),
			zap.String("error", err.Error()),
		)
	}

	// 5. 返回新状态
	return ApplyResult{NewStatus: decision.Next, Notified: notified}, nil
}

// buildExtra 随状态一并写入的附加字段
func (o *Orchestrator) buildExtra(req ApplyRequest) map[string]interface{} {
	extra := make(map[string]interface{})
	switch req.Action {
	case ctypes.ActionAssignAssistantEditor:
		if req.ToUserID != 0 {
			extra["editor_id"] = req.ToUserID
		}
	case ctypes.ActionPublish, ctypes.ActionReject:
		if req.Comments != "" {
			extra["editor_comments"] = req.Comments
		}
	}
	return extra
}

// notify 按动作给对方当事人发送通知
func (o *Orchestrator) notify(article *models.ArticleModel, req ApplyRequest, decision Decision) error {
	switch req.Action {
	case ctypes.ActionSubmit:
		// 新投稿广播给主编
		message := fmt.Sprintf("稿件《%s》已投稿，等待处理", article.Title)
		return o.emitter.Notify(0, ctypes.RoleEditorInChief, "新投稿", message, article.ID)

	case ctypes.ActionAssignAssistantEditor:
		message := fmt.Sprintf("稿件《%s》已指派给你处理", article.Title)
		if req.ToUserID != 0 {
			return o.emitter.Notify(req.ToUserID, "", "稿件指派", message, article.ID)
		}
		return o.emitter.Notify(0, ctypes.RoleAssistantEditor, "稿件指派", message, article.ID)

	case ctypes.ActionPublish:
		message := fmt.Sprintf("你的稿件《%s》已发表", article.Title)
		if req.Comments != "" {
			message = fmt.Sprintf("%s，编辑意见：%s", message, req.Comments)
		}
		return o.emitter.Notify(article.AuthorID, "", "稿件已发表", message, article.ID)

	case ctypes.ActionReject:
		message := fmt.Sprintf("你的稿件《%s》已退稿", article.Title)
		if req.Comments != "" {
			message = fmt.Sprintf("%s，编辑意见：%s", message, req.Comments)
		}
		return o.emitter.Notify(article.AuthorID, "", "稿件已退稿", message, article.ID)

	case ctypes.ActionSendComments:
		message := fmt.Sprintf("稿件《%s》收到编辑意见：%s", article.Title, req.Comments)
		return o.emitter.Notify(article.AuthorID, "", "编辑意见", message, article.ID)
	}
	return nil
}
