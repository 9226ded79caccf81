package user

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

type UserCreateRequest struct {
	FullName    string          `json:"full_name" validate:"required,min=2,max=50"`
	Account     string          `json:"account" validate:"required,min=5,max=50"`
	Password    string          `json:"password" validate:"required,min=6,max=50"`
	Email       string          `json:"email" validate:"omitempty,email"`
	Affiliation string          `json:"affiliation" validate:"omitempty,max=200"`
	Role        ctypes.UserRole `json:"role" validate:"required,oneof=author reviewer editor editor_in_chief assistant_editor administrator patron patron_in_chief"`
}

// UserCreate 注册用户
func (u *User) UserCreate(c *gin.Context) {
	var req UserCreateRequest
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

	err = (&models.UserModel{
		FullName:    req.FullName,
		Account:     req.Account,
		Password:    req.Password,
		Email:       req.Email,
		Affiliation: req.Affiliation,
		Role:        req.Role,
	}).Create(c.ClientIP())
	if err != nil {
		global.Log.Error("user.Create() failed", zap.String("error", err.Error()))
		res.Error(c, res.UserAlreadyExists, "用户创建失败")
		return
	}
	global.Log.Info("用户创建成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, nil)
}
