package article

import (
	"journal/global"
	"journal/models"
	"journal/models/ctypes"
	"journal/models/res"
	"journal/service/redis_ser"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type ArticleDetailRequest struct {
	ID string `uri:"id" validate:"required"`
}

// ArticleDetail 稿件详情，已发表稿件累计浏览量
func (a *Article) ArticleDetail(c *gin.Context) {
	var req ArticleDetailRequest
	err := c.ShouldBindUri(&req)
	if err != nil {
		global.Log.Error("c.ShouldBindUri() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, "请求参数格式错误")
		return
	}

	err = utils.Validate(req)
	if err != nil {
		global.Log.Error("utils.Validate() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, utils.FormatValidationError(err.(validator.ValidationErrors)))
		return
	}

	article, err := models.ArticleGet(req.ID)
	if err != nil {
		global.Log.Error("models.ArticleGet() failed", zap.String("error", err.Error()))
		res.Error(c, res.ArticleNotFound, "稿件不存在")
		return
	}

	// 未发表稿件只对作者和编辑部可见，已发表稿件无需登录
	if article.Status != ctypes.StatusPublished {
		claims := optionalClaims(c)
		if claims == nil {
			res.Error(c, res.PermissionDenied, "权限不足")
			return
		}
		if claims.UserID != article.AuthorID && !claims.Role.Editorial() {
			res.Error(c, res.PermissionDenied, "权限不足")
			return
		}
	} else {
		err = redis_ser.IncrArticleLookCount(req.ID, c.ClientIP())
		if err != nil {
			global.Log.Error("redis_ser.IncrArticleLookCount() failed", zap.String("error", err.Error()))
		}
	}

	global.Log.Info("稿件详情成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, article)
}

// optionalClaims 详情接口不强制登录，有合法token时取出用户信息
func optionalClaims(c *gin.Context) *utils.CustomClaims {
	if _claims, exists := c.Get("claims"); exists {
		if claims, ok := _claims.(*utils.CustomClaims); ok {
			return claims
		}
	}

	tokenString := c.GetHeader("Authorization")
	if len(tokenString) < 7 || tokenString[:7] != "Bearer " {
		return nil
	}
	claims, err := utils.ParseToken(tokenString[7:])
	if err != nil {
		return nil
	}
	return claims
}
