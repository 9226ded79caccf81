package partner

import (
	"journal/global"
	"journal/models"
	"journal/models/res"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type PartnerCreateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Link string `json:"link" validate:"required,url"`
}

// PartnerCreate 创建合作期刊链接
func (p *Partner) PartnerCreate(c *gin.Context) {
	var req PartnerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		global.Log.Error("c.ShouldBindJSON() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, "请求参数格式错误")
		return
	}

	err := utils.Validate(req)
	if err != nil {
		global.Log.Error("utils.Validate() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, utils.FormatValidationError(err.(validator.ValidationErrors)))
		return
	}

	err = (&models.PartnerModel{
		Name: req.Name,
		Link: req.Link,
	}).Create()
	if err != nil {
		global.Log.Error("partner.Create() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "创建合作期刊失败")
		return
	}
	global.Log.Info("合作期刊创建成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, nil)
}
