package model

// SysUser 控制台用户账号
type SysUser struct {
	BaseModel
	// 基础信息
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // 哈希密码
	Email    string `gorm:"size:100" json:"email"`

	// 系统级角色: admin (管理员), operator (运营)
	Role string `gorm:"size:20;default:'operator'" json:"role"`

	IsActive bool `gorm:"default:true" json:"is_active"`
}

func (SysUser) TableName() string {
	return "sys_users"
}
