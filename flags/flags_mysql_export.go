package flags

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"journal/global"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// MysqlExport 通过Docker容器执行mysqldump导出数据库备份
func MysqlExport(c *cli.Context) (err error) {
	mysql := global.Config.Mysql
	timer := time.Now().Format("20060102")

	// SQL文件保存路径：./数据库名_日期.sql
	sqlPath := fmt.Sprintf("./%s_%s.sql", mysql.DB, timer)

	cmder := fmt.Sprintf("docker exec mysql mysqldump -u%s -p%s %s > %s",
		mysql.User, mysql.Password, mysql.DB, sqlPath)

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/C", cmder)
	} else {
		cmd = exec.Command("sh", "-c", cmder)
	}

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		global.Log.Error("导出数据库失败",
			zap.String("error", err.Error()),
			zap.String("stderr", stderr.String()),
		)
		return fmt.Errorf("导出数据库失败: %v, stderr: %s", err, stderr.String())
	}

	global.Log.Info("数据库导出成功",
		zap.String("文件路径", sqlPath),
		zap.String("数据库", mysql.DB),
	)
	return nil
}
