package flags

import (
	"fmt"
	"os"
	"strings"

	"journal/global"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// MysqlImport 从SQL文件导入数据到MySQL数据库
func MysqlImport(c *cli.Context) error {
	path := c.String("path")

	byteData, err := os.ReadFile(path)
	if err != nil {
		global.Log.Error("读取SQL文件失败", zap.String("error", err.Error()), zap.String("path", path))
		return err
	}

	// 统一换行符，解决跨平台兼容性问题
	content := strings.ReplaceAll(string(byteData), "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	sqlList := strings.Split(content, ";\n")

	tx := global.DB.Begin()

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for i, sql := range sqlList {
		sql = strings.TrimSpace(sql)
		if sql == "" {
			continue
		}

		if err := tx.Exec(sql).Error; err != nil {
			global.Log.Error("SQL执行失败",
				zap.String("error", err.Error()),
				zap.Int("index", i),
				zap.String("sql", sql))

			tx.Rollback()
			return fmt.Errorf("导入失败：第%d条SQL执行出错: %v", i+1, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		global.Log.Error("事务提交失败", zap.String("error", err.Error()))
		return err
	}

	global.Log.Info("数据库导入成功",
		zap.Int("total", len(sqlList)))

	return nil
}
