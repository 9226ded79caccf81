package ctypes

import (
	"encoding/json"
	"testing"
	"time"
)

func TestArticleStatusValid(t *testing.T) {
	valid := []ArticleStatus{
		StatusDraft, StatusSubmitted, StatusUnderReview, StatusWithEditor,
		StatusWithAdmin, StatusAccepted, StatusPublished, StatusRejected,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("状态 %q 应当合法", s)
		}
	}

	invalid := []ArticleStatus{"", "deleted", "DRAFT", "draft "}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("状态 %q 不应当合法", s)
		}
	}
}

func TestArticleStatusTerminal(t *testing.T) {
	tests := []struct {
		status ArticleStatus
		want   bool
	}{
		{StatusDraft, false},
		{StatusSubmitted, false},
		{StatusUnderReview, false},
		{StatusWithEditor, false},
		{StatusWithAdmin, false},
		{StatusAccepted, false},
		{StatusPublished, true},
		{StatusRejected, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%q.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestUserRoleValid(t *testing.T) {
	valid := []UserRole{
		RoleAuthor, RoleReviewer, RoleEditor, RoleEditorInChief,
		RoleAssistantEditor, RoleAdmin, RolePatron, RolePatronInChief,
	}
	for _, r := range valid {
		if !r.Valid() {
			t.Errorf("角色 %q 应当合法", r)
		}
	}

	if UserRole("admin").Valid() {
		t.Error("角色 admin 不在闭集内，不应当合法")
	}
	if UserRole("").Valid() {
		t.Error("空角色不应当合法")
	}
}

func TestUserRoleEditorial(t *testing.T) {
	editorial := []UserRole{
		RoleEditor, RoleEditorInChief, RoleAssistantEditor,
		RoleAdmin, RolePatron, RolePatronInChief,
	}
	for _, r := range editorial {
		if !r.Editorial() {
			t.Errorf("角色 %q 应当属于编辑部", r)
		}
	}

	for _, r := range []UserRole{RoleAuthor, RoleReviewer, UserRole("ghost")} {
		if r.Editorial() {
			t.Errorf("角色 %q 不应当属于编辑部", r)
		}
	}
}

func TestWorkflowActionValid(t *testing.T) {
	valid := []WorkflowAction{
		ActionSubmit, ActionAssignAssistantEditor,
		ActionPublish, ActionReject, ActionSendComments,
	}
	for _, a := range valid {
		if !a.Valid() {
			t.Errorf("动作 %q 应当合法", a)
		}
	}

	if WorkflowAction("withdraw").Valid() {
		t.Error("动作 withdraw 不在闭集内，不应当合法")
	}
}

func TestMyTimeJSONRoundTrip(t *testing.T) {
	src := MyTime(time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC))

	data, err := json.Marshal(src)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}

	var dst MyTime
	if err := json.Unmarshal(data, &dst); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}

	if !time.Time(src).Equal(time.Time(dst)) {
		t.Errorf("往返不一致: %v != %v", time.Time(src), time.Time(dst))
	}
}

func TestMyTimeUnmarshalLegacyFormat(t *testing.T) {
	var mt MyTime
	if err := mt.UnmarshalJSON([]byte(`"2024-03-15 08:30:00"`)); err != nil {
		t.Fatalf("解析传统格式失败: %v", err)
	}
	if mt.String() != "2024-03-15 08:30:00" {
		t.Errorf("解析结果不符: %s", mt.String())
	}

	if err := mt.UnmarshalJSON([]byte(`"not-a-time"`)); err == nil {
		t.Error("非法时间字符串应当报错")
	}
}

func TestMyTimeScan(t *testing.T) {
	var mt MyTime
	if err := mt.Scan(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)); err != nil {
		t.Fatalf("扫描 time.Time 失败: %v", err)
	}
	if mt.String() != "2024-01-02 03:04:05" {
		t.Errorf("扫描结果不符: %s", mt.String())
	}

	if err := mt.Scan("2024-01-02 03:04:05"); err != nil {
		t.Fatalf("扫描字符串失败: %v", err)
	}

	if err := mt.Scan(nil); err != nil {
		t.Fatalf("扫描 nil 失败: %v", err)
	}
	if !time.Time(mt).IsZero() {
		t.Error("扫描 nil 后应当是零值时间")
	}

	if err := mt.Scan(123); err == nil {
		t.Error("扫描整数应当报错")
	}
}
