package search_ser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"journal/global"
	"journal/models"
	"journal/models/ctypes"

	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ArticleDoc 已发表稿件的搜索文档
// MySQL 是稿件的主存储，ES 只索引已发表稿件供检索
type ArticleDoc struct {
	ID         string        `json:"id"`
	CreatedAt  ctypes.MyTime `json:"created_at"`
	UpdatedAt  ctypes.MyTime `json:"updated_at"`
	Title      string        `json:"title"`       // 标题
	Abstract   string        `json:"abstract"`    // 摘要
	Keywords   string        `json:"keywords"`    // 关键词
	Content    string        `json:"content"`     // 正文
	AuthorID   uint          `json:"author_id"`   // 作者id
	AuthorName string        `json:"author_name"` // 作者姓名
	IssueID    uint          `json:"issue_id"`    // 所属刊期id
	LookCount  uint          `json:"look_count"`  // 浏览量
}

const (
	articleIndex = "journal_article_index"
	batchSize    = 1000
	timeout      = time.Second * 5
)

// ArticleIndexService 已发表稿件的检索服务
type ArticleIndexService struct {
	ctx          context.Context
	articleIndex string
	batchSize    int
	timeout      time.Duration
}

type DateRange struct {
	Start string `json:"start" form:"start"`
	End   string `json:"end" form:"end"`
}

// SearchParams 搜索参数
type SearchParams struct {
	models.PageInfo
	SortField string    `json:"sort_field" form:"sort_field"`
	SortOrder string    `json:"sort_order" form:"sort_order"`
	IssueID   uint      `json:"issue_id" form:"issue_id"`
	DateRange DateRange `json:"date_range" form:"date_range"`
}

// SearchResults 搜索结果
type SearchResults struct {
	Articles []ArticleDoc
	Total    int64
}

// NewArticleIndexService 创建检索服务实例
func NewArticleIndexService() *ArticleIndexService {
	return &ArticleIndexService{
		ctx:          context.Background(),
		articleIndex: articleIndex,
		batchSize:    batchSize,
		timeout:      timeout,
	}
}

// IndexCreate 创建索引
func (s *ArticleIndexService) IndexCreate() error {
	if s.ctx == nil {
		s.ctx = context.Background()
	}

	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	exist, err := s.IndexExist()
	if err != nil {
		return fmt.Errorf("检查索引是否存在失败: %w", err)
	}

	if exist {
		if err := s.IndexDelete(); err != nil {
			return fmt.Errorf("删除已存在的索引失败: %w", err)
		}
	}

	// 索引映射
	properties := map[string]types.Property{
		"title":       types.NewTextProperty(),
		"abstract":    types.NewTextProperty(),
		"keywords":    types.NewTextProperty(),
		"content":     types.NewTextProperty(),
		"created_at":  types.NewDateProperty(),
		"updated_at":  types.NewDateProperty(),
		"author_id":   types.NewIntegerNumberProperty(),
		"author_name": types.NewKeywordProperty(),
		"issue_id":    types.NewIntegerNumberProperty(),
		"look_count":  types.NewIntegerNumberProperty(),
	}

	_, err = global.Es.Indices.Create(articleIndex).
		Mappings(&types.TypeMapping{
			Properties: properties,
		}).
		Do(ctx)

	if err != nil {
		return fmt.Errorf("创建索引失败: %w", err)
	}
	global.Log.Info("创建索引成功", zap.String("index", articleIndex))
	return nil
}

// IndexExist 检查索引是否存在
func (s *ArticleIndexService) IndexExist() (bool, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	resp, err := global.Es.Indices.Exists(s.articleIndex).Do(ctx)
	if err != nil {
		return false, fmt.Errorf("检查索引是否存在失败: %w", err)
	}
	return resp, nil
}

// IndexDelete 删除索引
func (s *ArticleIndexService) IndexDelete() error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	_, err := global.Es.Indices.Delete(s.articleIndex).Do(ctx)
	if err != nil {
		return fmt.Errorf("删除索引失败: %w", err)
	}
	return nil
}

// docFromArticle 从稿件记录构建搜索文档
func docFromArticle(article *models.ArticleModel) *ArticleDoc {
	doc := &ArticleDoc{
		ID:         article.ID,
		CreatedAt:  article.CreatedAt,
		UpdatedAt:  article.UpdatedAt,
		Title:      article.Title,
		Abstract:   article.Abstract,
		Keywords:   article.Keywords,
		Content:    article.Content,
		AuthorID:   article.AuthorID,
		AuthorName: article.AuthorName,
		LookCount:  article.LookCount,
	}
	if article.IssueID != nil {
		doc.IssueID = *article.IssueID
	}
	return doc
}

// IndexArticle 把已发表稿件写入索引
func (s *ArticleIndexService) IndexArticle(article *models.ArticleModel) error {
	if article.Status != ctypes.StatusPublished {
		return fmt.Errorf("只索引已发表稿件，当前状态: %s", article.Status)
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	_, err := global.Es.Index(s.articleIndex).
		Id(article.ID).
		Document(docFromArticle(article)).
		Refresh(refresh.True).
		Do(ctx)

	if err != nil {
		return fmt.Errorf("索引稿件失败: %w", err)
	}
	return nil
}

// DocGet 获取索引中的稿件文档
func (s *ArticleIndexService) DocGet(id string) (*ArticleDoc, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	var result ArticleDoc
	resp, err := global.Es.Get(s.articleIndex, id).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取稿件文档失败: %w", err)
	}

	if err := json.Unmarshal(resp.Source_, &result); err != nil {
		return nil, fmt.Errorf("解析稿件文档失败: %w", err)
	}

	return &result, nil
}

// UpdateLookCount 更新索引中的浏览量
func (s *ArticleIndexService) UpdateLookCount(id string, count uint) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	_, err := global.Es.Update(s.articleIndex, id).
		Doc(map[string]uint{"look_count": count}).
		Refresh(refresh.True).
		Do(ctx)

	if err != nil {
		return fmt.Errorf("更新稿件浏览量失败: %w", err)
	}
	return nil
}

// RemoveArticles 批量移除索引中的稿件
func (s *ArticleIndexService) RemoveArticles(ids []string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < len(ids); i += s.batchSize {
		end := i + s.batchSize
		if end > len(ids) {
			end = len(ids)
		}

		batch := ids[i:end]

		// 构建批量删除请求
		bulkRequest := global.Es.Bulk().Index(s.articleIndex)

		for _, id := range batch {
			bulkRequest.DeleteOp(types.DeleteOperation{Id_: &id})
		}

		g.Go(func() error {
			resp, err := bulkRequest.Refresh(refresh.True).Do(ctx)
			if err != nil {
				return fmt.Errorf("批量移除稿件失败: %w", err)
			}

			if resp.Errors {
				return fmt.Errorf("批量移除稿件时发生错误")
			}

			return nil
		})
	}
	return g.Wait()
}

// Search 检索已发表稿件
func (s *ArticleIndexService) Search(params SearchParams) (*SearchResults, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	// 1. 构建布尔查询
	boolQuery := types.NewBoolQuery()

	// 2. 关键词搜索
	if params.Key != "" {
		multiMatchQuery := types.NewMultiMatchQuery()
		multiMatchQuery.Query = params.Key
		multiMatchQuery.Fields = []string{
			"title^3",         // 标题权重最高
			"keywords^2.5",    // 关键词次之
			"abstract^2",      // 摘要
			"content",         // 正文权重最低
			"author_name^1.5", // 作者名也可搜索
		}
		boolQuery.Must = append(boolQuery.Must, types.Query{MultiMatch: multiMatchQuery})
	}

	// 3. 刊期过滤
	if params.IssueID != 0 {
		boolQuery.Filter = append(boolQuery.Filter, types.Query{
			Term: map[string]types.TermQuery{
				"issue_id": {Value: params.IssueID},
			},
		})
	}

	// 4. 日期范围过滤
	if params.DateRange.Start != "" && params.DateRange.End != "" {
		rangeQuery := types.NewDateRangeQuery()
		rangeQuery.Gte = &params.DateRange.Start
		rangeQuery.Lte = &params.DateRange.End
		boolQuery.Filter = append(boolQuery.Filter, types.Query{
			Range: map[string]types.RangeQuery{"created_at": *rangeQuery},
		})
	}

	// 5. 分页处理
	page := params.Page
	if page <= 0 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	from := (page - 1) * pageSize

	// 6. 排序处理
	sortField := params.SortField
	sortOrder := params.SortOrder

	if sortField == "" {
		sortField = "created_at"
	}
	if sortOrder == "" {
		sortOrder = "desc"
	}

	// 7. 构建搜索请求
	searchRequest := global.Es.Search().
		Index(s.articleIndex).
		Query(&types.Query{Bool: boolQuery}).
		Sort(types.SortOptions{
			SortOptions: map[string]types.FieldSort{
				sortField: {Order: &sortorder.SortOrder{Name: sortOrder}},
			},
		}).
		From(from).
		Size(pageSize)

	// 8. 执行搜索
	resp, err := searchRequest.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("检索稿件失败: %w", err)
	}

	// 9. 处理搜索结果
	articles := make([]ArticleDoc, 0, int(resp.Hits.Total.Value))
	for _, hit := range resp.Hits.Hits {
		var doc ArticleDoc
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			global.Log.Error("解析稿件文档失败",
				zap.String("error", err.Error()),
				zap.String("document_id", *hit.Id_),
			)
			continue
		}
		articles = append(articles, doc)
	}

	return &SearchResults{
		Articles: articles,
		Total:    resp.Hits.Total.Value,
	}, nil
}

// DocExist 检查稿件是否已在索引中
func (s *ArticleIndexService) DocExist(id string) (bool, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	exists, err := global.Es.Exists(s.articleIndex, id).Do(ctx)
	if err != nil {
		return false, fmt.Errorf("检查稿件是否存在失败: %w", err)
	}

	return exists, nil
}

// PublishedStats 已发表稿件的统计数据
type PublishedStats struct {
	TotalArticles int64 `json:"total_articles"` // 已发表稿件总数
	TotalViews    int64 `json:"total_views"`    // 总浏览量
}

// GetPublishedStats 聚合已发表稿件的统计数据
func (s *ArticleIndexService) GetPublishedStats() (*PublishedStats, error) {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	lookField := "look_count"
	aggs := map[string]types.Aggregations{
		"total_views": {
			Sum: &types.SumAggregation{
				Field: &lookField,
			},
		},
	}

	resp, err := global.Es.Search().
		Index(s.articleIndex).
		Size(0). // 不需要返回文档，只需要聚合结果
		Aggregations(aggs).
		Do(ctx)

	if err != nil {
		return nil, fmt.Errorf("获取统计数据失败: %w", err)
	}

	stats := &PublishedStats{
		TotalArticles: resp.Hits.Total.Value,
	}

	if agg, found := resp.Aggregations["total_views"]; found {
		var sumAgg types.SumAggregate
		aggBytes, _ := json.Marshal(agg)
		if err := json.Unmarshal(aggBytes, &sumAgg); err != nil {
			global.Log.Error("解析聚合结果失败", zap.Error(err))
		} else {
			stats.TotalViews = int64(sumAgg.Value)
		}
	}

	return stats, nil
}
