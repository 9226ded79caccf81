package flags

import (
	"journal/global"
	"journal/models"
	"journal/models/ctypes"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func User(c *cli.Context) error {
	fullName := c.String("full_name")
	account := c.String("account")
	password := c.String("password")
	role := ctypes.UserRole(c.String("role"))
	ip := "127.0.0.1"

	if !role.Valid() {
		global.Log.Error("无效的用户角色", zap.String("role", string(role)))
		role = ctypes.RoleAdmin
	}

	user := &models.UserModel{
		Account:  account,
		FullName: fullName,
		Password: password,
		Role:     role,
	}

	if err := user.Create(ip); err != nil {
		global.Log.Error("用户创建失败",
			zap.String("error", err.Error()),
		)
		return err
	}

	global.Log.Infof("用户%s创建成功,account:%s,role:%s", fullName, user.Account, string(role))
	return nil
}
