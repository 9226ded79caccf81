package attachment

import (
	"io/fs"
	"mime/multipart"
	"os"
	"sync"

	"journal/global"
	"journal/models"
	"journal/models/res"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AttachmentUpload 上传稿件附件，支持多文件
func (a *Attachment) AttachmentUpload(c *gin.Context) {
	// 1. 获取上传文件
	form, err := c.MultipartForm()
	if err != nil {
		global.Log.Error("c.MultipartForm() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "获取MultipartForm失败")
		return
	}

	fileList, ok := form.File["files"]
	if !ok || len(fileList) == 0 {
		res.Error(c, res.InvalidParameter, "参数验证失败")
		return
	}

	articleID := c.PostForm("article_id")
	if articleID == "" {
		res.Error(c, res.InvalidParameter, "缺少稿件id")
		return
	}

	// 2. 附件只能由稿件作者上传
	article, err := models.ArticleGet(articleID)
	if err != nil {
		res.Error(c, res.ArticleNotFound, "稿件不存在")
		return
	}

	_claims, _ := c.Get("claims")
	claims := _claims.(*utils.CustomClaims)
	if article.AuthorID != claims.UserID && !claims.Role.Editorial() {
		res.Error(c, res.NotArticleAuthor, "只有稿件作者可以执行该操作")
		return
	}

	// 3. 确保上传目录存在
	if err := ensureUploadDir(global.Config.Upload.Path); err != nil {
		global.Log.Error("ensureUploadDir() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "创建上传目录失败")
		return
	}

	// 4. 并发处理文件上传
	var (
		wg      sync.WaitGroup
		resList []models.UploadResponse
		mutex   sync.Mutex
	)

	for _, file := range fileList {
		wg.Add(1)
		go func(file *multipart.FileHeader) {
			defer wg.Done()

			serviceRes := (&models.AttachmentModel{ArticleID: articleID}).Upload(file)

			mutex.Lock()
			resList = append(resList, serviceRes)
			mutex.Unlock()
		}(file)
	}
	wg.Wait()

	global.Log.Info("附件上传完成", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, resList)
}

// 确保上传目录存在
func ensureUploadDir(path string) error {
	if _, err := os.ReadDir(path); err != nil {
		return os.MkdirAll(path, fs.ModePerm)
	}
	return nil
}
