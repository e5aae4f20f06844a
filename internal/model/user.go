package model

import (
	"time"
)

type RoleName string

const (
	RoleAdmin RoleName = "admin"
	RoleUser  RoleName = "user"
)

// swagger:model Role
type Role struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:80;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}

func (Role) TableName() string {
	return "roles"
}

// swagger:model User
type User struct {
	BaseModel
	Email         string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"size:255;not null" json:"-"`
	Active        bool       `gorm:"default:true" json:"active"`
	FsUniquifier  string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	AuthToken     *string    `gorm:"size:512;uniqueIndex" json:"-"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
	FullName      string     `gorm:"size:255" json:"full_name"`
	Qualification string     `gorm:"size:255" json:"qualification"`
	DOB           *time.Time `json:"dob,omitempty"`
	LastActivity  time.Time  `json:"last_activity"`
	Roles         []Role     `gorm:"many2many:roles_users;" json:"-"`
	RoleNames     []string   `gorm:"-" json:"roles"`
}

func (User) TableName() string {
	return "users"
}

// HasRole 判断用户是否拥有指定角色（需预加载 Roles）
func (u *User) HasRole(role RoleName) bool {
	for _, r := range u.Roles {
		if r.Name == string(role) {
			return true
		}
	}
	return false
}

func (u *User) ListRoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
