package workflow_ser

import (
	"errors"
	"strings"
	"testing"
	"time"

	"journal/models"
	"journal/models/ctypes"

	"go.uber.org/zap"
)

// fakeStore 内存版稿件存取，复刻带版本条件的状态写入语义
type fakeStore struct {
	articles  map[string]*models.ArticleModel
	updateErr error
	updates   int
}

func newFakeStore(articles ...*models.ArticleModel) *fakeStore {
	store := &fakeStore{articles: make(map[string]*models.ArticleModel)}
	for _, a := range articles {
		if a.Version == 0 {
			a.Version = 1
		}
		store.articles[a.ID] = a
	}
	return store
}

func (f *fakeStore) Get(id string) (*models.ArticleModel, error) {
	a, ok := f.articles[id]
	if !ok {
		return nil, models.ErrArticleNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeStore) UpdateStatus(id string, version int64, to ctypes.ArticleStatus, extra map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	a, ok := f.articles[id]
	if !ok {
		return models.ErrArticleNotFound
	}
	if a.Version != version {
		return models.ErrVersionConflict
	}
	a.Status = to
	a.Version = version + 1
	a.UpdatedAt = ctypes.MyTime(time.Now())
	if comments, ok := extra["editor_comments"].(string); ok {
		a.EditorComments = comments
	}
	if editorID, ok := extra["editor_id"].(uint); ok {
		a.EditorID = &editorID
	}
	f.updates++
	return nil
}

type sentNotification struct {
	recipientID   uint
	recipientRole ctypes.UserRole
	title         string
	message       string
	articleID     string
}

// fakeEmitter 记录发出的通知，可配置为发送失败
type fakeEmitter struct {
	fail bool
	sent []sentNotification
}

func (f *fakeEmitter) Notify(recipientID uint, recipientRole ctypes.UserRole, title, message, articleID string) error {
	if f.fail {
		return errors.New("notify failed")
	}
	f.sent = append(f.sent, sentNotification{recipientID, recipientRole, title, message, articleID})
	return nil
}

func newTestOrchestrator(store *fakeStore, emitter *fakeEmitter) *Orchestrator {
	return NewOrchestrator(store, emitter, zap.NewNop().Sugar())
}

func draftArticle(id string, authorID uint) *models.ArticleModel {
	return &models.ArticleModel{
		ID:       id,
		Title:    "测试稿件",
		Status:   ctypes.StatusDraft,
		AuthorID: authorID,
		Version:  1,
	}
}

// 完整场景：投稿 → 指派 → 发表，最后作者收到带编辑意见的通知
func TestApplyActionFullScenario(t *testing.T) {
	store := newFakeStore(draftArticle("42", 100))
	emitter := &fakeEmitter{}
	orch := newTestOrchestrator(store, emitter)

	result, err := orch.ApplyAction(ApplyRequest{
		ArticleID: "42", Action: ctypes.ActionSubmit,
		RequesterID: 100, RequesterRole: ctypes.RoleAuthor,
	})
	if err != nil {
		t.Fatalf("submit 失败: %v", err)
	}
	if result.NewStatus != ctypes.StatusSubmitted {
		t.Fatalf("submit 后状态 = %s，期望 submitted", result.NewStatus)
	}

	result, err = orch.ApplyAction(ApplyRequest{
		ArticleID: "42", Action: ctypes.ActionAssignAssistantEditor,
		RequesterID: 200, RequesterRole: ctypes.RoleEditorInChief, ToUserID: 300,
	})
	if err != nil {
		t.Fatalf("assign 失败: %v", err)
	}
	if result.NewStatus != ctypes.StatusWithEditor {
		t.Fatalf("assign 后状态 = %s，期望 with_editor", result.NewStatus)
	}

	result, err = orch.ApplyAction(ApplyRequest{
		ArticleID: "42", Action: ctypes.ActionPublish,
		RequesterID: 300, RequesterRole: ctypes.RoleEditor, Comments: "Looks good",
	})
	if err != nil {
		t.Fatalf("publish 失败: %v", err)
	}
	if result.NewStatus != ctypes.StatusPublished {
		t.Fatalf("publish 后状态 = %s，期望 published", result.NewStatus)
	}
	if !result.Notified {
		t.Error("publish 应当通知成功")
	}

	article := store.articles["42"]
	if article.Status != ctypes.StatusPublished {
		t.Errorf("存储中状态 = %s，期望 published", article.Status)
	}
	if article.EditorComments != "Looks good" {
		t.Errorf("编辑意见 = %q，期望 %q", article.EditorComments, "Looks good")
	}

	// 作者必须收到包含编辑意见的发表通知
	var found bool
	for _, n := range emitter.sent {
		if n.recipientID == 100 && strings.Contains(n.message, "Looks good") {
			found = true
		}
	}
	if !found {
		t.Errorf("作者未收到含编辑意见的通知: %+v", emitter.sent)
	}
}

// 角色不符的动作被拒绝且不改动稿件
func TestApplyActionWrongRole(t *testing.T) {
	article := draftArticle("7", 100)
	article.Status = ctypes.StatusSubmitted
	store := newFakeStore(article)
	emitter := &fakeEmitter{}
	orch := newTestOrchestrator(store, emitter)

	_, err := orch.ApplyAction(ApplyRequest{
		ArticleID: "7", Action: ctypes.ActionPublish,
		RequesterID: 100, RequesterRole: ctypes.RoleAuthor,
	})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("期望 ErrInvalidTransition，得到 %v", err)
	}
	if store.articles["7"].Status != ctypes.StatusSubmitted {
		t.Errorf("稿件状态被意外改动: %s", store.articles["7"].Status)
	}
	if store.updates != 0 {
		t.Errorf("不应有写入，实际 %d 次", store.updates)
	}
	if len(emitter.sent) != 0 {
		t.Errorf("不应发出通知: %+v", emitter.sent)
	}
}

// 同一动作连做两次，第二次必须因状态已变而失败
func TestApplyActionNotIdempotent(t *testing.T) {
	store := newFakeStore(draftArticle("1", 100))
	orch := newTestOrchestrator(store, &fakeEmitter{})

	req := ApplyRequest{
		ArticleID: "1", Action: ctypes.ActionSubmit,
		RequesterID: 100, RequesterRole: ctypes.RoleAuthor,
	}

	if _, err := orch.ApplyAction(req); err != nil {
		t.Fatalf("第一次 submit 失败: %v", err)
	}
	if _, err := orch.ApplyAction(req); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("第二次 submit 期望 ErrInvalidTransition，得到 %v", err)
	}
	if store.articles["1"].Status != ctypes.StatusSubmitted {
		t.Errorf("状态 = %s，期望 submitted", store.articles["1"].Status)
	}
}

// 终态稿件拒绝一切改变状态的动作
func TestApplyActionTerminalAbsorbing(t *testing.T) {
	for _, status := range []ctypes.ArticleStatus{ctypes.StatusPublished, ctypes.StatusRejected} {
		article := draftArticle("9", 100)
		article.Status = status
		store := newFakeStore(article)
		orch := newTestOrchestrator(store, &fakeEmitter{})

		_, err := orch.ApplyAction(ApplyRequest{
			ArticleID: "9", Action: ctypes.ActionReject,
			RequesterID: 200, RequesterRole: ctypes.RoleEditorInChief,
		})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("终态 %s 的 reject 期望 ErrInvalidTransition，得到 %v", status, err)
		}
		if store.articles["9"].Status != status {
			t.Errorf("终态 %s 被改为 %s", status, store.articles["9"].Status)
		}
	}
}

// 退稿必须通知作者
func TestApplyActionRejectNotifiesAuthor(t *testing.T) {
	article := draftArticle("5", 77)
	article.Status = ctypes.StatusSubmitted
	store := newFakeStore(article)
	emitter := &fakeEmitter{}
	orch := newTestOrchestrator(store, emitter)

	result, err := orch.ApplyAction(ApplyRequest{
		ArticleID: "5", Action: ctypes.ActionReject,
		RequesterID: 200, RequesterRole: ctypes.RolePatron, Comments: "不符合期刊范围",
	})
	if err != nil {
		t.Fatalf("reject 失败: %v", err)
	}
	if result.NewStatus != ctypes.StatusRejected {
		t.Fatalf("状态 = %s，期望 rejected", result.NewStatus)
	}

	if len(emitter.sent) == 0 {
		t.Fatal("退稿后作者未收到通知")
	}
	if emitter.sent[0].recipientID != 77 {
		t.Errorf("通知接收人 = %d，期望 77", emitter.sent[0].recipientID)
	}
	if !strings.Contains(emitter.sent[0].message, "不符合期刊范围") {
		t.Errorf("通知未包含退稿意见: %s", emitter.sent[0].message)
	}
}

// send_comments 不改变状态也不写稿件，只发通知
func TestApplyActionSendCommentsNoMutation(t *testing.T) {
	article := draftArticle("3", 100)
	article.Status = ctypes.StatusUnderReview
	store := newFakeStore(article)
	emitter := &fakeEmitter{}
	orch := newTestOrchestrator(store, emitter)

	result, err := orch.ApplyAction(ApplyRequest{
		ArticleID: "3", Action: ctypes.ActionSendComments,
		RequesterID: 300, RequesterRole: ctypes.RoleEditor, Comments: "请补充实验数据",
	})
	if err != nil {
		t.Fatalf("send_comments 失败: %v", err)
	}
	if result.NewStatus != ctypes.StatusUnderReview {
		t.Errorf("状态 = %s，期望保持 under_review", result.NewStatus)
	}
	if store.updates != 0 {
		t.Errorf("send_comments 不应写稿件，实际 %d 次", store.updates)
	}
	if len(emitter.sent) != 1 || !strings.Contains(emitter.sent[0].message, "请补充实验数据") {
		t.Errorf("通知内容不符: %+v", emitter.sent)
	}
}

// 稿件不存在
func TestApplyActionNotFound(t *testing.T) {
	orch := newTestOrchestrator(newFakeStore(), &fakeEmitter{})

	_, err := orch.ApplyAction(ApplyRequest{
		ArticleID: "missing", Action: ctypes.ActionSubmit,
		RequesterID: 100, RequesterRole: ctypes.RoleAuthor,
	})
	if !errors.Is(err, models.ErrArticleNotFound) {
		t.Fatalf("期望 ErrArticleNotFound，得到 %v", err)
	}
}

// 非作者本人投稿被拒绝
func TestApplyActionSubmitNotAuthor(t *testing.T) {
	store := newFakeStore(draftArticle("2", 100))
	orch := newTestOrchestrator(store, &fakeEmitter{})

	_, err := orch.ApplyAction(ApplyRequest{
		ArticleID: "2", Action: ctypes.ActionSubmit,
		RequesterID: 999, RequesterRole: ctypes.RoleAuthor,
	})
	if !errors.Is(err, ErrNotArticleAuthor) {
		t.Fatalf("期望 ErrNotArticleAuthor，得到 %v", err)
	}
	if store.articles["2"].Status != ctypes.StatusDraft {
		t.Errorf("状态被意外改动: %s", store.articles["2"].Status)
	}
}

// 成功的状态转移必须刷新稿件的更新时间
func TestApplyActionRefreshesUpdatedAt(t *testing.T) {
	article := draftArticle("11", 100)
	stale := time.Now().Add(-48 * time.Hour)
	article.UpdatedAt = ctypes.MyTime(stale)
	store := newFakeStore(article)
	orch := newTestOrchestrator(store, &fakeEmitter{})

	_, err := orch.ApplyAction(ApplyRequest{
		ArticleID: "11", Action: ctypes.ActionSubmit,
		RequesterID: 100, RequesterRole: ctypes.RoleAuthor,
	})
	if err != nil {
		t.Fatalf("submit 失败: %v", err)
	}

	updatedAt := time.Time(store.articles["11"].UpdatedAt)
	if !updatedAt.After(stale) {
		t.Errorf("updated_at 未刷新: %v", updatedAt)
	}
}

// 版本冲突时返回冲突错误，不静默覆盖
func TestApplyActionVersionConflict(t *testing.T) {
	store := newFakeStore(draftArticle("8", 100))
	store.updateErr = models.ErrVersionConflict
	orch := newTestOrchestrator(store, &fakeEmitter{})

	_, err := orch.ApplyAction(ApplyRequest{
		ArticleID: "8", Action: ctypes.ActionSubmit,
		RequesterID: 100, RequesterRole: ctypes.RoleAuthor,
	})
	if !errors.Is(err, models.ErrVersionConflict) {
		t.Fatalf("期望 ErrVersionConflict，得到 %v", err)
	}
}

// 通知失败不回滚状态变更，结果报告部分成功
func TestApplyActionNotifyFailurePartialSuccess(t *testing.T) {
	store := newFakeStore(draftArticle("6", 100))
	emitter := &fakeEmitter{fail: true}
	orch := newTestOrchestrator(store, emitter)

	result, err := orch.ApplyAction(ApplyRequest{
		ArticleID: "6", Action: ctypes.ActionSubmit,
		RequesterID: 100, RequesterRole: ctypes.RoleAuthor,
	})
	if err != nil {
		t.Fatalf("通知失败不应导致动作失败: %v", err)
	}
	if result.NewStatus != ctypes.StatusSubmitted {
		t.Errorf("状态 = %s，期望 submitted", result.NewStatus)
	}
	if result.Notified {
		t.Error("Notified 应为 false")
	}
	if store.articles["6"].Status != ctypes.StatusSubmitted {
		t.Errorf("存储状态 = %s，期望 submitted", store.articles["6"].Status)
	}
}

// 指派动作记录被指派编辑并通知其本人
func TestApplyActionAssignRecordsEditor(t *testing.T) {
	article := draftArticle("4", 100)
	article.Status = ctypes.StatusSubmitted
	store := newFakeStore(article)
	emitter := &fakeEmitter{}
	orch := newTestOrchestrator(store, emitter)

	result, err := orch.ApplyAction(ApplyRequest{
		ArticleID: "4", Action: ctypes.ActionAssignAssistantEditor,
		RequesterID: 200, RequesterRole: ctypes.RoleAssistantEditor, ToUserID: 300,
	})
	if err != nil {
		t.Fatalf("assign 失败: %v", err)
	}
	if result.NewStatus != ctypes.StatusWithEditor {
		t.Fatalf("状态 = %s，期望 with_editor", result.NewStatus)
	}

	stored := store.articles["4"]
	if stored.EditorID == nil || *stored.EditorID != 300 {
		t.Errorf("editor_id 未记录: %+v", stored.EditorID)
	}
	if len(emitter.sent) != 1 || emitter.sent[0].recipientID != 300 {
		t.Errorf("被指派人未收到通知: %+v", emitter.sent)
	}
}
