package models

import (
	"bufio"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"journal/global"

	"github.com/importcjj/sensitive"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReviewModel 审稿意见模型
// send_comments 动作会落一条审稿意见记录，正文经过HTML清理和敏感词过滤
type ReviewModel struct {
	MODEL      `json:","`
	ArticleID  string    `json:"article_id" gorm:"type:varchar(32);not null;index;comment:稿件id"`
	ReviewerID uint      `json:"reviewer_id" gorm:"not null;index;comment:审稿人id"`
	Reviewer   UserModel `json:"reviewer" gorm:"foreignKey:ReviewerID"`
	Comments   string    `json:"comments" gorm:"type:text;not null;comment:审稿意见"`
}

var (
	ErrEmptyComments   = errors.New("审稿意见不能为空")
	ErrCommentsTooLong = errors.New("审稿意见不能超过5000字")
)

var sensitiveFilter *sensitive.Filter

// loadSensitiveWordsFromFile 从配置文件加载Base64编码的敏感词
func loadSensitiveWordsFromFile() error {
	filePath := "sensitive_words.txt"

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("打开敏感词文件失败: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// 跳过空行
		if line == "" {
			continue
		}

		// Base64解码
		decodedBytes, err := base64.StdEncoding.DecodeString(line)
		if err != nil {
			global.Log.Warn("Base64解码失败，跳过该行",
				zap.String("line", line),
				zap.String("error", err.Error()),
			)
			continue
		}

		// 转换为UTF-8字符串
		decodedStr := string(decodedBytes)
		decodedStr = strings.TrimSpace(decodedStr)

		if decodedStr == "" {
			continue
		}

		// 添加解码后的敏感词
		sensitiveFilter.AddWord(decodedStr)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("读取敏感词文件出错: %w", err)
	}

	return nil
}

func init() {
	// 敏感词过滤器初始化
	sensitiveFilter = sensitive.New()
	// 从文件加载敏感词
	if err := loadSensitiveWordsFromFile(); err != nil {
		log.Printf("加载敏感词失败: %v", err)
	}
}

// FilterComments 过滤审稿意见内容
func FilterComments(comments string) string {
	// 清理HTML
	comments = bluemonday.UGCPolicy().Sanitize(comments)
	if sensitiveFilter == nil {
		return comments
	}
	// 过滤敏感词
	return sensitiveFilter.Replace(comments, '*')
}

// reviewValidate 验证审稿意见
func reviewValidate(review *ReviewModel) error {
	comments := strings.TrimSpace(review.Comments)
	if comments == "" {
		return ErrEmptyComments
	}
	if len(comments) > 5000 {
		return ErrCommentsTooLong
	}
	return nil
}

// ReviewCreate 创建审稿意见
func ReviewCreate(review *ReviewModel) error {
	// 1. 意见验证和过滤
	if err := reviewValidate(review); err != nil {
		return fmt.Errorf("审稿意见验证失败: %w", err)
	}
	review.Comments = FilterComments(review.Comments)

	// 2. 事务处理
	return global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("创建审稿意见失败: %w", err)
		}
		return nil
	})
}

// ReviewListByArticle 稿件的审稿意见列表
func ReviewListByArticle(articleID string) ([]*ReviewModel, error) {
	var reviews []*ReviewModel
	err := global.DB.Model(&ReviewModel{}).
		Where("article_id = ?", articleID).
		Preload("Reviewer").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("获取审稿意见失败: %w", err)
	}
	return reviews, nil
}
