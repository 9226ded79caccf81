package models

import (
	"errors"
	"fmt"
	"time"

	"journal/global"
	"journal/models/ctypes"

	"gorm.io/gorm"
)

var (
	ErrArticleNotFound = errors.New("稿件不存在")
	ErrVersionConflict = errors.New("稿件版本冲突")
)

// ArticleModel 稿件模型
// status 只允许通过 StatusUpdate 变更，内容对工作流是不透明的
type ArticleModel struct {
	ID             string               `json:"id" gorm:"primaryKey;type:varchar(32);comment:稿件id"`
	CreatedAt      ctypes.MyTime        `json:"created_at" gorm:"type:datetime NOT NULL DEFAULT CURRENT_TIMESTAMP;comment:创建时间"`
	UpdatedAt      ctypes.MyTime        `json:"updated_at" gorm:"type:datetime NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP;comment:更新时间"`
	DeletedAt      gorm.DeletedAt       `json:"deleted_at" gorm:"type:datetime NULL;index;comment:删除时间"`
	Title          string               `json:"title" gorm:"type:varchar(255);not null;comment:标题"`
	Abstract       string               `json:"abstract" gorm:"type:text;comment:摘要"`
	Keywords       string               `json:"keywords" gorm:"type:varchar(255);comment:关键词"`
	Content        string               `json:"content" gorm:"type:longtext;comment:正文"`
	Status         ctypes.ArticleStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft';index;comment:工作流状态"`
	AuthorID       uint                 `json:"author_id" gorm:"not null;index;comment:作者id"`
	AuthorName     string               `json:"author_name" gorm:"type:varchar(50);comment:作者姓名"`
	ReviewerID     *uint                `json:"reviewer_id" gorm:"index;comment:审稿人id"`
	EditorID       *uint                `json:"editor_id" gorm:"index;comment:受理编辑id"`
	IssueID        *uint                `json:"issue_id" gorm:"index;comment:所属刊期id"`
	EditorComments string               `json:"editor_comments" gorm:"type:text;comment:编辑意见"`
	LookCount      uint                 `json:"look_count" gorm:"not null;default:0;comment:浏览量"`
	Version        int64                `json:"version" gorm:"not null;default:1;comment:乐观锁版本号"`
}

// Create 创建稿件，初始状态固定为草稿
func (a *ArticleModel) Create() error {
	a.Status = ctypes.StatusDraft
	a.Version = 1
	return global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return fmt.Errorf("创建稿件失败: %w", err)
		}
		return nil
	})
}

// ArticleGet 根据ID获取稿件
func ArticleGet(id string) (*ArticleModel, error) {
	var article ArticleModel
	err := global.DB.Where("id = ?", id).Take(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("获取稿件失败: %w", err)
	}
	return &article, nil
}

// StatusUpdate 条件更新稿件状态
// 以 version 为乐观锁条件，并发的状态变更只有一个会成功，
// 失败方得到 ErrVersionConflict 而不是静默覆盖
func StatusUpdate(id string, version int64, to ctypes.ArticleStatus, extra map[string]interface{}) error {
	updates := map[string]interface{}{
		"status":     to,
		"version":    version + 1,
		"updated_at": time.Now(),
	}
	for k, v := range extra {
		updates[k] = v
	}

	result := global.DB.Model(&ArticleModel{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("更新稿件状态失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// 区分稿件不存在和版本冲突
		var count int64
		if err := global.DB.Model(&ArticleModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("检查稿件存在性失败: %w", err)
		}
		if count == 0 {
			return ErrArticleNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

// UpdateDraft 作者更新草稿内容
func (a *ArticleModel) UpdateDraft(updates map[string]interface{}) error {
	// 草稿编辑不触碰工作流字段
	for _, field := range []string{"status", "version", "author_id", "editor_id", "reviewer_id"} {
		delete(updates, field)
	}
	return global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(a).Updates(updates).Error; err != nil {
			return fmt.Errorf("更新稿件失败: %w", err)
		}
		return nil
	})
}

// Delete 删除稿件
func (a *ArticleModel) Delete() error {
	return global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(a).Error; err != nil {
			return fmt.Errorf("删除稿件失败: %w", err)
		}
		return nil
	})
}

// ArticleListByAuthor 作者名下的稿件列表
func ArticleListByAuthor(authorID uint, page PageInfo) ([]ArticleModel, int64, error) {
	return articleList(global.DB.Where("author_id = ?", authorID), page)
}

// ArticleListVisible 按角色可见性列出稿件
// 编辑部角色可见全部非草稿稿件，作者可见自己的全部稿件，其余只见已发表
func ArticleListVisible(role ctypes.UserRole, userID uint, page PageInfo) ([]ArticleModel, int64, error) {
	query := global.DB.Model(&ArticleModel{})
	switch {
	case role.Editorial():
		query = query.Where("status <> ?", ctypes.StatusDraft)
	case role == ctypes.RoleAuthor:
		query = query.Where("author_id = ? OR status = ?", userID, ctypes.StatusPublished)
	default:
		query = query.Where("status = ?", ctypes.StatusPublished)
	}
	return articleList(query, page)
}

// articleList 统一分页查询
func articleList(query *gorm.DB, page PageInfo) ([]ArticleModel, int64, error) {
	if page.Page <= 0 {
		page.Page = 1
	}
	if page.PageSize <= 0 {
		page.PageSize = 10
	}

	var total int64
	if err := query.Model(&ArticleModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计稿件数量失败: %w", err)
	}

	var articles []ArticleModel
	err := query.Order("created_at DESC").
		Offset((page.Page - 1) * page.PageSize).
		Limit(page.PageSize).
		Find(&articles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询稿件列表失败: %w", err)
	}
	return articles, total, nil
}

// ArticleCountByStatus 按状态统计稿件数量
func ArticleCountByStatus() (map[ctypes.ArticleStatus]int64, error) {
	type row struct {
		Status ctypes.ArticleStatus
		Total  int64
	}
	var rows []row
	err := global.DB.Model(&ArticleModel{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("按状态统计稿件失败: %w", err)
	}

	counts := make(map[ctypes.ArticleStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}
