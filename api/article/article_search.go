package article

import (
	"journal/global"
	"journal/models/res"
	"journal/service/search_ser"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ArticleSearch 全文检索已发表稿件
func (a *Article) ArticleSearch(c *gin.Context) {
	var req search_ser.SearchParams
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

	results, err := search_ser.NewArticleIndexService().Search(req)
	if err != nil {
		global.Log.Error("search_ser.Search() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "检索失败")
		return
	}
	global.Log.Info("稿件检索成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.SuccessWithPage(c, results.Articles, results.Total, req.Page, req.PageSize)
}
