package article

import (
	"journal/global"
	"journal/models"
	"journal/models/res"
	"journal/service/redis_ser"
	"journal/service/search_ser"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type ArticleDeleteRequest struct {
	IDList []string `json:"id_list" validate:"required,min=1"`
}

// ArticleDelete 管理员批量删除稿件，同步清理索引和缓存
func (a *Article) ArticleDelete(c *gin.Context) {
	var req ArticleDeleteRequest
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

	err = global.DB.Where("id IN ?", req.IDList).Delete(&models.ArticleModel{}).Error
	if err != nil {
		global.Log.Error("global.DB.Delete() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "稿件删除失败")
		return
	}

	err = search_ser.NewArticleIndexService().RemoveArticles(req.IDList)
	if err != nil {
		global.Log.Error("search_ser.RemoveArticles() failed", zap.String("error", err.Error()))
	}

	for _, articleID := range req.IDList {
		err = redis_ser.DeleteArticleStats(articleID)
		if err != nil {
			global.Log.Error("redis_ser.DeleteArticleStats() failed", zap.String("error", err.Error()))
		}
	}
	global.Log.Info("稿件删除成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, nil)
}
