package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/foresight/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrCredentialsMissing 在邮箱或密码为空时返回。
	ErrCredentialsMissing = errors.New("email and password are required")
	// ErrEmailTaken 在注册邮箱已被占用时返回。
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials 在登录凭证不匹配时返回，不区分具体字段。
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrProfileNotFound 在用户对应的资料行缺失时返回。
	ErrProfileNotFound = errors.New("profile not found")
)

// AccountService 负责账号注册、登录与资料维护。
// 会话本身由 handler 层的 cookie session 承载。
type AccountService struct {
	db *gorm.DB
}

// NewAccountService 构造 AccountService。
func NewAccountService(gdb *gorm.DB) *AccountService {
	return &AccountService{db: gdb}
}

// SignUp registers a new account and provisions its profile row in the
// same transaction, so a signed-in user always has a matching profile.
func (s *AccountService) SignUp(email, password string) (*db.User, error) {
	normalized := normalizeEmail(email)
	if normalized == "" || strings.TrimSpace(password) == "" {
		return nil, ErrCredentialsMissing
	}

	var existing db.User
	err := s.db.Where("email = ?", normalized).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing account: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.User{Email: normalized, Password: string(hashed)}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := db.Profile{
			ID:    user.ID,
			Email: user.Email,
			Role:  db.RoleUser,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	return &user, nil
}

// SignIn verifies the credentials and returns the matching user.
func (s *AccountService) SignIn(email, password string) (*db.User, error) {
	normalized := normalizeEmail(email)
	if normalized == "" || password == "" {
		return nil, ErrCredentialsMissing
	}

	var user db.User
	if err := s.db.Where("email = ?", normalized).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetProfile 根据用户 ID 获取资料行。
func (s *AccountService) GetProfile(userID uint) (*db.Profile, error) {
	var profile db.Profile
	if err := s.db.First(&profile, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// ProfileUpdateInput 描述资料更新时允许写入的字段。
// 使用指针判断字段是否显式传入。
type ProfileUpdateInput struct {
	DisplayName *string
	AvatarURL   *string
}

// UpdateProfile persists the mutable profile fields only.
// ID, email and role are server-owned and never written here.
func (s *AccountService) UpdateProfile(userID uint, input ProfileUpdateInput) (*db.Profile, error) {
	var profile db.Profile
	if err := s.db.First(&profile, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("load profile for update: %w", err)
	}

	if input.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.AvatarURL != nil {
		profile.AvatarURL = strings.TrimSpace(*input.AvatarURL)
	}

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	return &profile, nil
}

// EnsureDevUser 幂等地创建开发测试账号并提升为管理员角色。
// 账号已存在时只做角色提升，返回 created=false。
func (s *AccountService) EnsureDevUser(email, password, displayName string) (*db.Profile, bool, error) {
	normalized := normalizeEmail(email)
	if normalized == "" || password == "" {
		return nil, false, ErrCredentialsMissing
	}

	var user db.User
	err := s.db.Where("email = ?", normalized).First(&user).Error
	created := false
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		signedUp, err := s.SignUp(normalized, password)
		if err != nil {
			return nil, false, err
		}
		user = *signedUp
		created = true
	case err != nil:
		return nil, false, fmt.Errorf("find dev account: %w", err)
	}

	profile, err := s.GetProfile(user.ID)
	if err != nil {
		return nil, created, err
	}

	changed := false
	if profile.Role != db.RoleAdmin {
		profile.Role = db.RoleAdmin
		changed = true
	}
	if profile.DisplayName == "" && strings.TrimSpace(displayName) != "" {
		profile.DisplayName = strings.TrimSpace(displayName)
		changed = true
	}
	if changed {
		if err := s.db.Save(profile).Error; err != nil {
			return nil, created, fmt.Errorf("promote dev account: %w", err)
		}
	}

	return profile, created, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
