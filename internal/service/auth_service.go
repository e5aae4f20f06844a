package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/PriyanshVijay26/quiz-master/internal/config"
	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/repository"
	"github.com/PriyanshVijay26/quiz-master/internal/util"
	"github.com/PriyanshVijay26/quiz-master/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Tx       *repository.TxManager
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, tx *repository.TxManager, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Tx:       tx,
		Cfg:      cfg,
	}
}

type RegisterInput struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	Qualification string `json:"qualification"`
	DOB           string `json:"dob" binding:"omitempty,isodate"`
}

type LoginResult struct {
	UserID uint     `json:"user_id"`
	Token  string   `json:"token"`
	Roles  []string `json:"roles"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, util.ErrCredentialsRequired
	}

	var dob *time.Time
	if in.DOB != "" {
		t, err := time.Parse(util.DateFormat, strings.TrimSpace(in.DOB))
		if err != nil {
			return nil, util.ErrInvalidDOB
		}
		dob = &t
	}

	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:         email,
		Password:      string(hashedPassword),
		FullName:      in.FullName,
		Qualification: in.Qualification,
		DOB:           dob,
		Active:        true,
		FsUniquifier:  uuid.NewString(),
		LastActivity:  time.Now().UTC(),
	}

	err = s.Tx.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.UserRepo.WithTx(tx)
		role, err := repo.EnsureRole(model.RoleUser, "Regular user")
		if err != nil {
			return err
		}
		user.Roles = []model.Role{*role}
		return repo.Create(user)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, util.ErrEmailRegistered
	}
	if err != nil {
		return nil, err
	}

	user.RoleNames = user.ListRoleNames()
	return user, nil
}

func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, util.ErrCredentialsRequired
	}

	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, util.ErrUserInactive
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	if err := s.UserRepo.SetAuthToken(user.ID, &token); err != nil {
		return nil, err
	}
	if err := s.UserRepo.UpdateLastActivity(user.ID); err != nil {
		logger.Log.Warn("Failed to update last activity", zap.Uint("userId", user.ID), zap.Error(err))
	}

	return &LoginResult{
		UserID: user.ID,
		Token:  token,
		Roles:  user.ListRoleNames(),
	}, nil
}

// Logout 更换 fs_uniquifier，之前签发的所有令牌立即失效
func (s *AuthService) Logout(userID uint) error {
	return s.UserRepo.RotateUniquifier(userID, uuid.NewString())
}

// Authenticate 校验令牌并加载用户，角色以数据库为准
func (s *AuthService) Authenticate(token string) (*model.User, *util.Claims, error) {
	claims, err := util.ParseJWT(token, s.Cfg.JWT.Secret)
	if err != nil {
		return nil, nil, util.ErrInvalidCredentials
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrUserNotFound
		}
		return nil, nil, err
	}
	if !user.Active {
		return nil, nil, util.ErrUserInactive
	}
	if user.FsUniquifier != claims.Uniquifier {
		return nil, nil, util.ErrInvalidCredentials
	}

	claims.Roles = user.ListRoleNames()
	return user, claims, nil
}

func (s *AuthService) Profile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	user.RoleNames = user.ListRoleNames()
	return user, nil
}

func (s *AuthService) ListUsers() ([]model.User, error) {
	users, err := s.UserRepo.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].RoleNames = users[i].ListRoleNames()
	}
	return users, nil
}
