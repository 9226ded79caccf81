package models

import (
	"errors"
	"fmt"

	"journal/global"
	"journal/models/ctypes"
	"journal/utils"

	"gorm.io/gorm"
)

// UserModel 用户模型
type UserModel struct {
	MODEL       `json:","`
	FullName    string          `json:"full_name" gorm:"column:full_name;size:50" validate:"required,min=2,max=50"`
	Account     string          `json:"account" gorm:"uniqueIndex:idx_account,length:191" validate:"required,min=5,max=191"`
	Password    string          `json:"-" validate:"required,min=6"`
	Email       string          `json:"email"`
	Affiliation string          `json:"affiliation"` // 所属机构
	Address     string          `json:"address"`
	Token       string          `json:"token"`
	OrcidID     string          `json:"orcid_id" gorm:"column:orcid_id"`
	Role        ctypes.UserRole `json:"role" validate:"required"`
}

// Create 创建用户
func (u *UserModel) Create(ip string) error {
	// 验证用户输入
	if err := utils.Validate(u); err != nil {
		return fmt.Errorf("输入验证失败: %w", err)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("无效的用户角色: %s", u.Role)
	}

	return global.DB.Transaction(func(tx *gorm.DB) error {
		// 检查用户是否存在
		if err := u.checkExist(); err != nil {
			return fmt.Errorf("用户检查失败: %w", err)
		}

		// 密码加密
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("密码处理失败: %w", err)
		}
		u.Password = hashedPassword

		// 获取地址信息
		u.Address = utils.GetAddrByIp(ip)

		// 创建用户
		if err := tx.Create(u).Error; err != nil {
			return fmt.Errorf("创建用户失败: %w", err)
		}

		return nil
	})
}

// checkExist 检查用户是否已存在
func (u *UserModel) checkExist() error {
	var exists bool
	err := global.DB.Model(&UserModel{}).
		Select("1").
		Where("full_name = ? OR account = ?", u.FullName, u.Account).
		Limit(1).
		Find(&exists).
		Error

	if err != nil {
		return fmt.Errorf("检查用户存在性失败: %w", err)
	}
	if exists {
		return errors.New("用户名或账号已存在")
	}
	return nil
}

// FindByAccount 根据账号查找用户
func (u *UserModel) FindByAccount(account string) error {
	return global.DB.Where("account = ?", account).Take(u).Error
}

// FindByOrcidID 根据 ORCID iD 查找用户
func (u *UserModel) FindByOrcidID(orcidID string) error {
	return global.DB.Where("orcid_id = ?", orcidID).Take(u).Error
}

// UpdatePassword 更新用户密码
func (u *UserModel) UpdatePassword(newPassword string) error {
	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("密码处理失败: %w", err)
	}

	return global.DB.Model(u).Update("password", hashedPassword).Error
}

// UpdateProfile 更新用户信息
func (u *UserModel) UpdateProfile(updates map[string]interface{}) error {
	// 过滤敏感字段
	sensitiveFields := []string{"password", "account", "role", "token"}
	for _, field := range sensitiveFields {
		delete(updates, field)
	}

	return global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(u).Updates(updates).Error; err != nil {
			return fmt.Errorf("更新用户信息失败: %w", err)
		}
		return nil
	})
}

// UpdateToken 更新用户token
func (u *UserModel) UpdateToken(token string) error {
	return global.DB.Model(u).Update("token", token).Error
}

// Delete 删除用户
func (u *UserModel) Delete() error {
	return global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(u).Error; err != nil {
			return fmt.Errorf("删除用户失败: %w", err)
		}
		return nil
	})
}

// ValidatePassword 验证密码
func (u *UserModel) ValidatePassword(password string) bool {
	return utils.CheckPassword(u.Password, password)
}

// IsAdmin 检查是否为管理员
func (u *UserModel) IsAdmin() bool {
	return u.Role == ctypes.RoleAdmin
}

// UserList 用户分页列表
func UserList(page PageInfo) ([]UserModel, int64, error) {
	if page.Page <= 0 {
		page.Page = 1
	}
	if page.PageSize <= 0 {
		page.PageSize = 10
	}

	query := global.DB.Model(&UserModel{})
	if page.Key != "" {
		query = query.Where("full_name LIKE ? OR account LIKE ?", "%"+page.Key+"%", "%"+page.Key+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计用户数量失败: %w", err)
	}

	var users []UserModel
	err := query.Order("created_at DESC").
		Offset((page.Page - 1) * page.PageSize).
		Limit(page.PageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询用户列表失败: %w", err)
	}
	return users, total, nil
}

// GetUserByID 根据ID获取用户
func GetUserByID(id uint) (*UserModel, error) {
	var user UserModel
	if err := global.DB.Take(&user, id).Error; err != nil {
		return nil, fmt.Errorf("获取用户失败: %w", err)
	}
	return &user, nil
}

// GetTotalUsers 获取用户总数
func GetTotalUsers() (int64, error) {
	var count int64
	err := global.DB.Model(&UserModel{}).Count(&count).Error
	return count, err
}
