package article

import (
	"strconv"

	"journal/global"
	"journal/models"
	"journal/models/res"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type ArticleCreateRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Abstract string `json:"abstract" validate:"required,min=1,max=2000"`
	Keywords string `json:"keywords" validate:"required,min=1,max=255"`
	Content  string `json:"content" validate:"required,min=1,max=500000"`
	IssueID  *uint  `json:"issue_id"`
}

// ArticleCreate 作者创建稿件草稿
func (a *Article) ArticleCreate(c *gin.Context) {
	var req ArticleCreateRequest
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

	// 正文统一经过 markdown -> html -> markdown 清洗，去掉脚本等危险内容
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

	user, err := models.GetUserByID(claims.UserID)
	if err != nil {
		global.Log.Error("models.GetUserByID() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "查找用户失败")
		return
	}

	id, err := utils.GenerateID()
	if err != nil {
		global.Log.Error("utils.GenerateID() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "生成ID失败")
		return
	}

	article := models.ArticleModel{
		ID:         strconv.FormatInt(id, 10),
		Title:      req.Title,
		Abstract:   req.Abstract,
		Keywords:   req.Keywords,
		Content:    content,
		AuthorID:   claims.UserID,
		AuthorName: user.FullName,
		IssueID:    req.IssueID,
	}
	err = article.Create()
	if err != nil {
		global.Log.Error("article.Create() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "创建稿件失败")
		return
	}
	global.Log.Info("创建稿件成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, article.ID)
}
