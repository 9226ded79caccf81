package article

import (
	"journal/global"
	"journal/models"
	"journal/models/res"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ArticleList 按角色可见性列出稿件
func (a *Article) ArticleList(c *gin.Context) {
	var req models.PageInfo
	if err := c.ShouldBindQuery(&req); err != nil {
		global.Log.Error("c.ShouldBindQuery() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, "请求参数格式错误")
		return
	}

	err := utils.Validate(req)
	if err != nil {
		global.Log.Error("utils.Validate() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, utils.FormatValidationError(err.(validator.ValidationErrors)))
		return
	}

	_claims, _ := c.Get("claims")
	claims := _claims.(*utils.CustomClaims)

	list, count, err := models.ArticleListVisible(claims.Role, claims.UserID, req)
	if err != nil {
		global.Log.Error("models.ArticleListVisible() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "加载失败")
		return
	}
	global.Log.Info("稿件列表成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.SuccessWithPage(c, list, count, req.Page, req.PageSize)
}

// ArticleMine 作者名下的稿件列表
func (a *Article) ArticleMine(c *gin.Context) {
	var req models.PageInfo
	if err := c.ShouldBindQuery(&req); err != nil {
		global.Log.Error("c.ShouldBindQuery() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, "请求参数格式错误")
		return
	}

	err := utils.Validate(req)
	if err != nil {
		global.Log.Error("utils.Validate() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, utils.FormatValidationError(err.(validator.ValidationErrors)))
		return
	}

	_claims, _ := c.Get("claims")
	claims := _claims.(*utils.CustomClaims)

	list, count, err := models.ArticleListByAuthor(claims.UserID, req)
	if err != nil {
		global.Log.Error("models.ArticleListByAuthor() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "加载失败")
		return
	}
	global.Log.Info("我的稿件列表成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.SuccessWithPage(c, list, count, req.Page, req.PageSize)
}
