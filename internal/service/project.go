package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"SiteOK/config"
	"SiteOK/internal/cache"
	"SiteOK/internal/model"
	"SiteOK/internal/model/dto"
	"SiteOK/internal/repository"
	"SiteOK/pkg/email"
	pkgerrors "SiteOK/pkg/errors"
	"SiteOK/pkg/logger"
	"SiteOK/storage/database"
	"SiteOK/utils"
)

var (
	projectService *ProjectService
	projectOnce    sync.Once
)

func Project() *ProjectService {
	projectOnce.Do(func() {
		projectService = NewProjectService(database.DB(), NewRelaySink())
		projectService.codeCache = true
	})
	return projectService
}

// Mailer 邮件出口，单测换掉避免真的连 SMTP
type Mailer interface {
	SendProjectResetCode(to, projectName, code string) error
}

type smtpMailer struct{}

func (smtpMailer) SendProjectResetCode(to, projectName, code string) error {
	return email.SendProjectResetCode(to, projectName, code)
}

type ProjectService struct {
	db        *gorm.DB
	events    EventSink
	mailer    Mailer
	codeCache bool
}

func NewProjectService(db *gorm.DB, events EventSink) *ProjectService {
	return &ProjectService{db: db, events: events, mailer: smtpMailer{}}
}

func (s *ProjectService) getByCode(ctx context.Context, code string) (*model.Project, error) {
	project, err := repository.GetProjectByCode(s.db.WithContext(ctx), code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ProjectNotFound
		}
		return nil, fmt.Errorf("failed to query project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) getByID(ctx context.Context, id int64) (*model.Project, error) {
	project, err := repository.GetProjectByID(s.db.WithContext(ctx), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ProjectNotFound
		}
		return nil, fmt.Errorf("failed to query project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) invalidateCode(ctx context.Context, code string) {
	if !s.codeCache {
		return
	}
	if err := cache.InvalidateProjectCode(ctx, repository.NormalizeCode(code)); err != nil {
		logger.Logger.Warn("Failed to invalidate project code cache",
			zap.String("code", code),
			zap.Error(err),
		)
	}
}

// List 管理端项目列表，新建的在前
func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return repository.ListProjects(s.db.WithContext(ctx))
}

// Create 建项目：码唯一，口令 bcrypt 落库
func (s *ProjectService) Create(ctx context.Context, req dto.CreateProjectRequest) (*model.Project, error) {
	if req.Name == "" || req.Code == "" || req.Password == "" || req.AdminEmail == "" {
		return nil, pkgerrors.ValidationError
	}
	if !utils.ValidateEmail(req.AdminEmail) {
		return nil, pkgerrors.ValidationError.WithMessage("Invalid email format")
	}

	db := s.db.WithContext(ctx)

	exists, err := repository.ProjectCodeExists(db, req.Code, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check project code: %w", err)
	}
	if exists {
		return nil, pkgerrors.ProjectCodeTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	project := &model.Project{
		Name:       req.Name,
		Code:       repository.NormalizeCode(req.Code),
		Password:   hash,
		AdminEmail: req.AdminEmail,
	}

	if err := repository.CreateProject(db, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	logger.Logger.Info("Project created",
		zap.Int64("project_id", project.ID),
		zap.String("code", project.Code),
	)

	return project, nil
}

// Update 改名/换码，换码要查重并失效旧码缓存
func (s *ProjectService) Update(ctx context.Context, id int64, req dto.UpdateProjectRequest) (*model.Project, error) {
	if req.Name == "" || req.Code == "" {
		return nil, pkgerrors.ValidationError
	}

	project, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	exists, err := repository.ProjectCodeExists(db, req.Code, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check project code: %w", err)
	}
	if exists {
		return nil, pkgerrors.ProjectCodeTaken
	}

	oldCode := project.Code
	project.Name = req.Name
	project.Code = repository.NormalizeCode(req.Code)

	if err := repository.SaveProject(db, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.invalidateCode(ctx, oldCode)
	s.invalidateCode(ctx, project.Code)

	return project, nil
}

// Delete 连同出勤记录和补卡申请一起删
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	project, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if err := repository.DeleteProjectCascade(s.db.WithContext(ctx), project); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.invalidateCode(ctx, project.Code)

	logger.Logger.Info("Project deleted",
		zap.Int64("project_id", id),
		zap.String("code", project.Code),
	)

	return nil
}

// VerifyCode 工人端只校验项目码
func (s *ProjectService) VerifyCode(ctx context.Context, code string) (*dto.VerifyProjectResponse, error) {
	if code == "" {
		return nil, pkgerrors.ValidationError
	}

	project, err := repository.GetProjectByCode(s.db.WithContext(ctx), code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.InvalidProject
		}
		return nil, fmt.Errorf("failed to query project: %w", err)
	}

	return &dto.VerifyProjectResponse{
		Valid: true,
		Project: dto.ProjectSnapshot{
			ID:   project.ID,
			Name: project.Name,
			Code: project.Code,
		},
	}, nil
}

// Verify 校验项目码 + 项目口令（没设口令的项目直接放行）
func (s *ProjectService) Verify(ctx context.Context, req dto.VerifyProjectRequest) (*dto.VerifyProjectResponse, error) {
	if req.Code == "" || req.Password == "" {
		return nil, pkgerrors.ValidationError
	}

	project, err := repository.GetProjectByCode(s.db.WithContext(ctx), req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.InvalidProject
		}
		return nil, fmt.Errorf("failed to query project: %w", err)
	}

	if project.Password != "" && !utils.CheckPassword(req.Password, project.Password) {
		return nil, pkgerrors.InvalidProjectPassword
	}

	return &dto.VerifyProjectResponse{
		Valid: true,
		Project: dto.ProjectSnapshot{
			ID:   project.ID,
			Name: project.Name,
			Code: project.Code,
		},
	}, nil
}

// VerifyAccess 管理员进入项目看板前的口令复核
func (s *ProjectService) VerifyAccess(ctx context.Context, id int64, password string) error {
	project, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if project.Password != "" && !utils.CheckPassword(password, project.Password) {
		return pkgerrors.InvalidProjectPassword
	}

	return nil
}

// UpdatePassword 管理员直接换项目口令
func (s *ProjectService) UpdatePassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return pkgerrors.ValidationError
	}

	project, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	project.Password = hash
	if err := repository.SaveProject(s.db.WithContext(ctx), project); err != nil {
		return fmt.Errorf("failed to update project password: %w", err)
	}

	return nil
}

// RequestPassword 工人忘记项目口令，给在线的管理端推一条通知。
// 不校验项目码是否存在，避免变成项目码探测接口。
func (s *ProjectService) RequestPassword(ctx context.Context, req dto.WorkerPasswordRequest) error {
	if req.Code == "" {
		return pkgerrors.ValidationError
	}

	workerName := req.WorkerName
	if workerName == "" {
		workerName = "A worker"
	}

	s.events.PasswordRequested(ctx, req.Code, workerName)
	return nil
}

// ForgotPassword 给项目管理员邮箱发 6 位重置码，15 分钟有效
func (s *ProjectService) ForgotPassword(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", pkgerrors.ValidationError
	}

	project, err := s.getByCode(ctx, code)
	if err != nil {
		return "", err
	}

	resetCode, err := utils.ResetCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}

	expiry := time.Now().Add(time.Duration(config.Cfg.ResetTokenExpireMinutes) * time.Minute)
	project.ResetToken = resetCode
	project.ResetTokenExpiry = &expiry

	if err := repository.SaveProject(s.db.WithContext(ctx), project); err != nil {
		return "", fmt.Errorf("failed to save reset token: %w", err)
	}

	if err := s.mailer.SendProjectResetCode(project.AdminEmail, project.Name, resetCode); err != nil {
		return "", fmt.Errorf("failed to send reset email: %w", err)
	}

	logger.Logger.Info("Project reset code sent",
		zap.Int64("project_id", project.ID),
		zap.String("code", project.Code),
	)

	return project.AdminEmail, nil
}

func (s *ProjectService) checkResetToken(project *model.Project, token string) error {
	if project.ResetToken == "" || project.ResetTokenExpiry == nil {
		return pkgerrors.ResetTokenInvalid.WithMessage("No reset request found")
	}
	if time.Now().After(*project.ResetTokenExpiry) {
		return pkgerrors.ResetTokenInvalid.WithMessage("Reset code has expired")
	}
	if project.ResetToken != token {
		return pkgerrors.ResetTokenInvalid.WithMessage("Invalid reset code")
	}
	return nil
}

// VerifyResetToken 前端分步表单的中间一步，只验码不改口令
func (s *ProjectService) VerifyResetToken(ctx context.Context, req dto.ProjectVerifyResetRequest) error {
	if req.Code == "" || req.ResetToken == "" {
		return pkgerrors.ValidationError
	}

	project, err := s.getByCode(ctx, req.Code)
	if err != nil {
		return err
	}

	return s.checkResetToken(project, req.ResetToken)
}

// ResetPassword 验码通过后设新口令并作废重置码
func (s *ProjectService) ResetPassword(ctx context.Context, req dto.ProjectResetPasswordRequest) error {
	if req.Code == "" || req.ResetToken == "" || req.NewPassword == "" {
		return pkgerrors.ValidationError
	}

	project, err := s.getByCode(ctx, req.Code)
	if err != nil {
		return err
	}

	if err := s.checkResetToken(project, req.ResetToken); err != nil {
		return err
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	project.Password = hash
	project.ResetToken = ""
	project.ResetTokenExpiry = nil

	if err := repository.SaveProject(s.db.WithContext(ctx), project); err != nil {
		return fmt.Errorf("failed to reset project password: %w", err)
	}

	return nil
}
