package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestConvertMarkdownToHTMLEmpty(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := ConvertMarkdownToHTML(content)
		if !errors.Is(err, ErrEmptyContent) {
			t.Errorf("空内容 %q 应当返回 ErrEmptyContent, got %v", content, err)
		}
	}
}

func TestConvertHTMLToMarkdownEmpty(t *testing.T) {
	_, err := ConvertHTMLToMarkdown("  ")
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("空内容应当返回 ErrEmptyContent, got %v", err)
	}
}

func TestConvertMarkdownToHTMLStripsScript(t *testing.T) {
	content := "# 摘要\n\n<script>alert(1)</script>\n\n正文段落"

	html, err := ConvertMarkdownToHTML(content)
	if err != nil {
		t.Fatalf("转换失败: %v", err)
	}

	if strings.Contains(html, "<script>") || strings.Contains(html, "alert(1)") {
		t.Errorf("脚本标签未被移除: %s", html)
	}
	if !strings.Contains(html, "摘要") || !strings.Contains(html, "正文段落") {
		t.Errorf("正常内容丢失: %s", html)
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	content := "# 标题\n\n第一段内容。\n\n- 要点一\n- 要点二"

	html, err := ConvertMarkdownToHTML(content)
	if err != nil {
		t.Fatalf("markdown 转 html 失败: %v", err)
	}

	markdown, err := ConvertHTMLToMarkdown(html)
	if err != nil {
		t.Fatalf("html 转 markdown 失败: %v", err)
	}

	for _, want := range []string{"标题", "第一段内容", "要点一", "要点二"} {
		if !strings.Contains(markdown, want) {
			t.Errorf("往返后丢失内容 %q: %s", want, markdown)
		}
	}
}
