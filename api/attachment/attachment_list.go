package attachment

import (
	"journal/global"
	"journal/models"
	"journal/models/res"
	"journal/service/search_ser"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type AttachmentListRequest struct {
	models.PageInfo
	ArticleID string `json:"article_id" form:"article_id"`
}

func (a *Attachment) AttachmentList(c *gin.Context) {
	var req AttachmentListRequest
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

	list, count, err := search_ser.ComList(models.AttachmentModel{ArticleID: req.ArticleID}, search_ser.Option{
		PageInfo: req.PageInfo,
		Likes:    []string{"name"},
	})
	if err != nil {
		global.Log.Error("search_ser.ComList() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "加载失败")
		return
	}
	global.Log.Info("附件列表成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.SuccessWithPage(c, list, count, req.Page, req.PageSize)
}
