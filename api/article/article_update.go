package article

import (
	"journal/global"
	"journal/models"
	"journal/models/ctypes"
	"journal/models/res"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type ArticleUpdateRequest struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title" validate:"omitempty,min=1,max=200"`
	Abstract string `json:"abstract" validate:"omitempty,min=1,max=2000"`
	Keywords string `json:"keywords" validate:"omitempty,min=1,max=255"`
	Content  string `json:"content" validate:"omitempty,min=1,max=500000"`
	IssueID  *uint  `json:"issue_id"`
}

// ArticleUpdate 作者修改草稿内容，投稿后内容即冻结
func (a *Article) ArticleUpdate(c *gin.Context) {
	var req ArticleUpdateRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		global.Log.Error("c.ShouldBindJSON() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, "请求参数格式错误")
		return
	}

	err = utils.Validate(req)
	if err != nil {
		global.Log.Error("utils.Validate() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, utils.FormatValidationError(err.(validator.ValidationErrors)))
		return
	}

	_claims, _ := c.Get("claims")
	claims := _claims.(*utils.CustomClaims)

	article, err := models.ArticleGet(req.ID)
	if err != nil {
		global.Log.Error("models.ArticleGet() failed", zap.String("error", err.Error()))
		res.Error(c, res.ArticleNotFound, "稿件不存在")
		return
	}

	if article.AuthorID != claims.UserID {
		res.Error(c, res.NotArticleAuthor, "只有稿件作者可以执行该操作")
		return
	}
	if article.Status != ctypes.StatusDraft {
		res.Error(c, res.ArticleNotDraft, "稿件不在草稿状态")
		return
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Abstract != "" {
		updates["abstract"] = req.Abstract
	}
	if req.Keywords != "" {
		updates["keywords"] = req.Keywords
	}
	if req.Content != "" {
		html, err := utils.ConvertMarkdownToHTML(req.Content)
		if err != nil {
			global.Log.Error("utils.ConvertMarkdownToHTML() failed", zap.String("error", err.Error()))
			res.Error(c, res.ServerError, "正文转换失败")
			return
		}
		content, err := utils.ConvertHTMLToMarkdown(html)
		if err != nil {
			global.Log.Error("utils.ConvertHTMLToMarkdown() failed", zap.String("error", err.Error()))
			res.Error(c, res.ServerError, "正文转换失败")
			return
		}
		updates["content"] = content
	}
	if req.IssueID != nil {
		updates["issue_id"] = *req.IssueID
	}

	if len(updates) == 0 {
		res.Error(c, res.InvalidParameter, "没有需要更新的内容")
		return
	}

	err = article.UpdateDraft(updates)
	if err != nil {
		global.Log.Error("article.UpdateDraft() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "更新稿件失败")
		return
	}
	global.Log.Info("更新稿件成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, nil)
}
