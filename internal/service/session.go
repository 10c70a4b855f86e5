package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"SiteOK/internal/cache"
	"SiteOK/internal/model"
	"SiteOK/internal/model/dto"
	"SiteOK/internal/repository"
	pkgerrors "SiteOK/pkg/errors"
	"SiteOK/pkg/logger"
	"SiteOK/storage/database"
	"SiteOK/utils"
)

var (
	sessionService *SessionService
	sessionOnce    sync.Once
)

func Session() *SessionService {
	sessionOnce.Do(func() {
		sessionService = NewSessionService(database.DB(), NewRelaySink())
		sessionService.codeCache = true
	})
	return sessionService
}

type SessionService struct {
	db     *gorm.DB
	events EventSink

	// redis 项目码缓存只在完整进程里开，单测不连 redis
	codeCache bool
}

func NewSessionService(db *gorm.DB, events EventSink) *SessionService {
	return &SessionService{db: db, events: events}
}

// resolveProject 项目码找项目，热路径先走 redis
func (s *SessionService) resolveProject(ctx context.Context, code string) (*model.Project, error) {
	db := s.db.WithContext(ctx)

	if s.codeCache {
		if id, ok := cache.GetProjectID(ctx, repository.NormalizeCode(code)); ok {
			project, err := repository.GetProjectByID(db, id)
			if err == nil {
				return project, nil
			}
			// 缓存指过去的项目没了，当 miss 走库
		}
	}

	project, err := repository.GetProjectByCode(db, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.InvalidProject
		}
		return nil, fmt.Errorf("failed to query project: %w", err)
	}

	if s.codeCache {
		if err := cache.SetProjectID(ctx, repository.NormalizeCode(code), project.ID); err != nil {
			logger.Logger.Warn("Failed to cache project code", zap.Error(err))
		}
	}

	return project, nil
}

func normalizeUserType(raw string) model.UserType {
	if strings.EqualFold(raw, string(model.UserTypeVisitor)) {
		return model.UserTypeVisitor
	}
	return model.UserTypeEmployee
}

// Open 签到，创建一条 time_out 为空的在场记录
func (s *SessionService) Open(ctx context.Context, req dto.CreateLogRequest) (*model.AttendanceLog, error) {
	if req.ProjectCode == "" || req.Name == "" || req.TimeIn == "" || req.Date == "" {
		return nil, pkgerrors.ValidationError
	}

	project, err := s.resolveProject(ctx, req.ProjectCode)
	if err != nil {
		return nil, err
	}

	log := &model.AttendanceLog{
		ProjectID: project.ID,
		Name:      req.Name,
		Trade:     req.Trade,
		CarReg:    req.CarReg,
		UserType:  normalizeUserType(req.UserType),
		TimeIn:    req.TimeIn,
		Date:      req.Date,
	}

	if err := repository.CreateLog(s.db.WithContext(ctx), log); err != nil {
		return nil, fmt.Errorf("failed to create log: %w", err)
	}

	s.events.SessionOpened(ctx, log, project.Code)

	logger.Logger.Info("Session opened",
		zap.Int64("log_id", log.ID),
		zap.String("project_code", project.Code),
		zap.String("name", log.Name),
		zap.String("date", log.Date),
	)

	return log, nil
}

// Checkout 签退。time_out 缺省取服务器墙钟（分钟精度），工时服务端重算。
// 带 version 走乐观锁，不带保持覆盖写。
func (s *SessionService) Checkout(ctx context.Context, id int64, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	db := s.db.WithContext(ctx)

	log, err := repository.GetLogByID(db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.LogNotFound
		}
		return nil, fmt.Errorf("failed to query log: %w", err)
	}

	timeOut := utils.NowClock()
	if req.TimeOut != nil && *req.TimeOut != "" {
		timeOut = *req.TimeOut
	}

	hours, err := utils.Hours(log.Date, log.TimeIn, timeOut)
	if err != nil {
		return nil, pkgerrors.ValidationError.WithMessage(err.Error())
	}

	rows, err := repository.UpdateLogGuarded(db, id, req.Version, map[string]interface{}{
		"time_out": timeOut,
		"hours":    hours,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to checkout log: %w", err)
	}
	if rows == 0 {
		// 行还在就是 version 没对上，行没了就是并发删除
		if _, err := repository.GetLogByID(db, id); err == nil {
			return nil, pkgerrors.VersionConflict
		}
		return nil, pkgerrors.LogNotFound
	}

	logger.Logger.Info("Session closed",
		zap.Int64("log_id", id),
		zap.String("time_out", timeOut),
		zap.Float64("hours", hours),
	)

	return &dto.CheckoutResponse{TimeOut: timeOut, Hours: hours}, nil
}

// Reopen 撤销签退，记录回到在场状态
func (s *SessionService) Reopen(ctx context.Context, id int64) error {
	db := s.db.WithContext(ctx)

	rows, err := repository.UpdateLogGuarded(db, id, nil, map[string]interface{}{
		"time_out": nil,
		"hours":    nil,
	})
	if err != nil {
		return fmt.Errorf("failed to reopen log: %w", err)
	}
	if rows == 0 {
		return pkgerrors.LogNotFound
	}

	logger.Logger.Info("Session reopened", zap.Int64("log_id", id))
	return nil
}

// ListActive 某项目仍在场的记录，看板用
func (s *SessionService) ListActive(ctx context.Context, projectCode string) ([]model.AttendanceLog, error) {
	project, err := s.resolveProject(ctx, projectCode)
	if err != nil {
		return nil, err
	}

	return repository.ListActiveLogs(s.db.WithContext(ctx), project.ID)
}

// ListAll 项目全量记录（含已签退），报表/导出用
func (s *SessionService) ListAll(ctx context.Context, projectID int64) ([]model.AttendanceLog, error) {
	return repository.ListLogs(s.db.WithContext(ctx), projectID)
}

// Update 管理员改单，工时由服务端按新时段重算
func (s *SessionService) Update(ctx context.Context, id int64, req dto.UpdateLogRequest) (*model.AttendanceLog, error) {
	if req.Name == "" || req.TimeIn == "" || req.TimeOut == "" || req.Date == "" {
		return nil, pkgerrors.ValidationError
	}

	hours, err := utils.Hours(req.Date, req.TimeIn, req.TimeOut)
	if err != nil {
		return nil, pkgerrors.ValidationError.WithMessage(err.Error())
	}

	db := s.db.WithContext(ctx)

	rows, err := repository.UpdateLogGuarded(db, id, req.Version, map[string]interface{}{
		"name":      req.Name,
		"trade":     req.Trade,
		"car_reg":   req.CarReg,
		"user_type": normalizeUserType(req.UserType),
		"time_in":   req.TimeIn,
		"time_out":  req.TimeOut,
		"hours":     hours,
		"reason":    req.Reason,
		"date":      req.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update log: %w", err)
	}
	if rows == 0 {
		if _, err := repository.GetLogByID(db, id); err == nil {
			return nil, pkgerrors.VersionConflict
		}
		return nil, pkgerrors.LogNotFound
	}

	return repository.GetLogByID(db, id)
}

// Delete 硬删除一条记录
func (s *SessionService) Delete(ctx context.Context, id int64) error {
	deleted, err := repository.DeleteLog(s.db.WithContext(ctx), id)
	if err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}
	if !deleted {
		return pkgerrors.LogNotFound
	}
	return nil
}

// ManualCreate 管理员手工补录，可以连 time_out 一起带上
func (s *SessionService) ManualCreate(ctx context.Context, req dto.ManualLogRequest) (*model.AttendanceLog, error) {
	if req.ProjectID == 0 || req.Name == "" || req.TimeIn == "" || req.Date == "" {
		return nil, pkgerrors.ValidationError
	}

	db := s.db.WithContext(ctx)

	if _, err := repository.GetProjectByID(db, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ProjectNotFound
		}
		return nil, fmt.Errorf("failed to query project: %w", err)
	}

	log := &model.AttendanceLog{
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Trade:     req.Trade,
		CarReg:    req.CarReg,
		UserType:  normalizeUserType(req.UserType),
		TimeIn:    req.TimeIn,
		Date:      req.Date,
	}

	if req.TimeOut != "" {
		hours, err := utils.Hours(req.Date, req.TimeIn, req.TimeOut)
		if err != nil {
			return nil, pkgerrors.ValidationError.WithMessage(err.Error())
		}
		log.TimeOut = &req.TimeOut
		log.Hours = &hours
	}

	if err := repository.CreateLog(db, log); err != nil {
		return nil, fmt.Errorf("failed to create log: %w", err)
	}

	return log, nil
}
