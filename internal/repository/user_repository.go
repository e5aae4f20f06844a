package repository

import (
	"time"

	"github.com/PriyanshVijay26/quiz-master/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{DB: tx}
}

// Create 同时写入 roles_users 关联
func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Omit("Roles.*").Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Roles").First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Roles").Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) List() ([]model.User, error) {
	var users []model.User
	err := r.DB.Preload("Roles").Order("id asc").Find(&users).Error
	return users, err
}

func (r *UserRepository) SetAuthToken(userID uint, token *string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("auth_token", token).Error
}

// RotateUniquifier 更换 fs_uniquifier 并清空 auth_token，使已签发的令牌全部失效
func (r *UserRepository) RotateUniquifier(userID uint, uniquifier string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"fs_uniquifier": uniquifier,
			"auth_token":    nil,
		}).Error
}

func (r *UserRepository) UpdateLastActivity(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_activity", time.Now().UTC()).Error
}

// EnsureRole 角色不存在时创建
func (r *UserRepository) EnsureRole(name model.RoleName, description string) (*model.Role, error) {
	role := model.Role{Name: string(name)}
	err := r.DB.Where(model.Role{Name: string(name)}).
		Attrs(model.Role{Description: description}).
		FirstOrCreate(&role).Error
	return &role, err
}
