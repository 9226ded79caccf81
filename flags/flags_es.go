package flags

import (
	"encoding/json"

	"journal/global"
	"journal/models"
	"journal/models/ctypes"
	"journal/service/search_ser"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

type Data struct {
	ID  *string         `json:"id"`
	Doc json.RawMessage `json:"doc"`
}

type ESIndexResponse struct {
	Index string `json:"index"`
	Data  []Data `json:"data"`
}

// EsIndexCreate 创建索引并重建全部已发表稿件的文档
func EsIndexCreate(c *cli.Context) (err error) {
	indexService := search_ser.NewArticleIndexService()
	err = indexService.IndexCreate()
	if err != nil {
		global.Log.Error("索引创建失败", zap.String("error", err.Error()))
		return err
	}

	// 已发表稿件重新入索引
	var articles []models.ArticleModel
	err = global.DB.Where("status = ?", ctypes.StatusPublished).Find(&articles).Error
	if err != nil {
		global.Log.Error("查询已发表稿件失败", zap.String("error", err.Error()))
		return err
	}

	for i := range articles {
		if err := indexService.IndexArticle(&articles[i]); err != nil {
			global.Log.Error("稿件入索引失败",
				zap.String("articleID", articles[i].ID),
				zap.String("error", err.Error()))
		}
	}

	global.Log.Infof("索引重建完成,共处理 %d 条已发表稿件", len(articles))
	return nil
}
