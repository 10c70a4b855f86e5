package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"SiteOK/internal/model"
	"SiteOK/internal/model/dto"
	"SiteOK/internal/repository"
	pkgerrors "SiteOK/pkg/errors"
	"SiteOK/pkg/logger"
	"SiteOK/pkg/token"
	"SiteOK/storage/database"
	"SiteOK/utils"
)

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = NewAuthService(database.DB())
	})
	return authService
}

// TokenIssuer 单测不想初始化 JWT 生成器时可替换
type TokenIssuer func(subjectID, role string) (string, int, error)

type AuthService struct {
	db    *gorm.DB
	issue TokenIssuer
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db, issue: token.Generate}
}

// AdminLogin 邮箱 + 密码换带 admin 角色的 JWT
func (s *AuthService) AdminLogin(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, pkgerrors.ValidationError
	}

	admin, err := repository.GetAdminByEmail(s.db.WithContext(ctx), req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.InvalidCredentials
		}
		return nil, fmt.Errorf("failed to query admin: %w", err)
	}

	if !utils.CheckPassword(req.Password, admin.Password) {
		return nil, pkgerrors.InvalidCredentials
	}

	accessToken, expiresIn, err := s.issue(strconv.FormatInt(admin.ID, 10), token.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Logger.Info("Admin logged in", zap.Int64("admin_id", admin.ID))

	return &dto.TokenResponse{
		Token:     accessToken,
		ExpiresIn: expiresIn,
		User: dto.UserSnapshot{
			Email: admin.Email,
			Role:  token.RoleAdmin,
		},
	}, nil
}

// AdminSignup 注册管理员账号
func (s *AuthService) AdminSignup(ctx context.Context, req dto.AdminSignupRequest) error {
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return pkgerrors.ValidationError
	}
	if !utils.ValidateEmail(req.Email) {
		return pkgerrors.ValidationError.WithMessage("Invalid email format")
	}

	db := s.db.WithContext(ctx)

	if _, err := repository.GetAdminByEmail(db, req.Email); err == nil {
		return pkgerrors.EmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to query admin: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.Admin{
		Email:        req.Email,
		Password:     hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Organization: req.Organization,
	}

	if err := repository.CreateAdmin(db, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	logger.Logger.Info("Admin account created", zap.Int64("admin_id", admin.ID))
	return nil
}

// AdminForgotPassword 生成重置令牌。邮箱不存在也返回空令牌不报错，
// 不暴露账号是否存在。
func (s *AuthService) AdminForgotPassword(ctx context.Context, emailAddr string) (string, error) {
	if emailAddr == "" {
		return "", pkgerrors.ValidationError
	}

	db := s.db.WithContext(ctx)

	admin, err := repository.GetAdminByEmail(db, emailAddr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to query admin: %w", err)
	}

	resetToken, err := utils.ResetToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	expires := time.Now().Add(time.Hour)
	admin.ResetToken = resetToken
	admin.ResetExpires = &expires

	if err := repository.SaveAdmin(db, admin); err != nil {
		return "", fmt.Errorf("failed to save reset token: %w", err)
	}

	logger.Logger.Info("Admin reset token issued", zap.Int64("admin_id", admin.ID))
	return resetToken, nil
}

// AdminResetPassword 凭未过期的令牌改密码并作废令牌
func (s *AuthService) AdminResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	if req.Token == "" || req.NewPassword == "" {
		return pkgerrors.ValidationError
	}

	db := s.db.WithContext(ctx)

	admin, err := repository.GetAdminByResetToken(db, req.Token, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.ResetTokenInvalid
		}
		return fmt.Errorf("failed to query admin: %w", err)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin.Password = hash
	admin.ResetToken = ""
	admin.ResetExpires = nil

	if err := repository.SaveAdmin(db, admin); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}

// GuardLogin 门卫登录，角色是 guard
func (s *AuthService) GuardLogin(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, pkgerrors.ValidationError
	}

	guard, err := repository.GetGuardByEmail(s.db.WithContext(ctx), req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.InvalidCredentials
		}
		return nil, fmt.Errorf("failed to query guard: %w", err)
	}

	if !utils.CheckPassword(req.Password, guard.Password) {
		return nil, pkgerrors.InvalidCredentials
	}

	accessToken, expiresIn, err := s.issue(strconv.FormatInt(guard.ID, 10), token.RoleGuard)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.TokenResponse{
		Token:     accessToken,
		ExpiresIn: expiresIn,
		User: dto.UserSnapshot{
			Name:      guard.Name,
			Email:     guard.Email,
			Role:      token.RoleGuard,
			ProjectID: guard.ProjectID,
		},
	}, nil
}

// GuardSignup 注册门卫账号，可以顺带绑定项目
func (s *AuthService) GuardSignup(ctx context.Context, req dto.GuardSignupRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return pkgerrors.ValidationError
	}

	db := s.db.WithContext(ctx)

	if _, err := repository.GetGuardByEmail(db, req.Email); err == nil {
		return pkgerrors.EmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to query guard: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	guard := &model.Guard{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		ProjectID: req.ProjectID,
	}

	if err := repository.CreateGuard(db, guard); err != nil {
		return fmt.Errorf("failed to create guard: %w", err)
	}

	return nil
}

// ListGuards 管理端门卫列表（带所属项目）
func (s *AuthService) ListGuards(ctx context.Context) ([]repository.GuardRow, error) {
	return repository.ListGuards(s.db.WithContext(ctx))
}

// AssignGuard 把门卫分到某个项目，projectID 为 nil 解除分配
func (s *AuthService) AssignGuard(ctx context.Context, guardID int64, projectID *int64) error {
	ok, err := repository.AssignGuardProject(s.db.WithContext(ctx), guardID, projectID)
	if err != nil {
		return fmt.Errorf("failed to assign guard: %w", err)
	}
	if !ok {
		return pkgerrors.GuardNotFound
	}
	return nil
}

// DeleteGuard 注销门卫账号
func (s *AuthService) DeleteGuard(ctx context.Context, guardID int64) error {
	ok, err := repository.DeleteGuard(s.db.WithContext(ctx), guardID)
	if err != nil {
		return fmt.Errorf("failed to delete guard: %w", err)
	}
	if !ok {
		return pkgerrors.GuardNotFound
	}
	return nil
}
