package service

import (
	"context"
	"errors"
	"fmt"
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
)

var (
	approvalService *ApprovalService
	approvalOnce    sync.Once
)

func Approval() *ApprovalService {
	approvalOnce.Do(func() {
		approvalService = NewApprovalService(database.DB(), NewRelaySink())
		approvalService.statuses = redisStatusCache{}
	})
	return approvalService
}

// StatusCache 轮询热点的状态缓存。Get miss 返回 false，Set 失败只记日志。
type StatusCache interface {
	Get(ctx context.Context, id int64) (string, bool)
	Set(ctx context.Context, id int64, status string, terminal bool)
}

type redisStatusCache struct{}

func (redisStatusCache) Get(ctx context.Context, id int64) (string, bool) {
	return cache.GetRequestStatus(ctx, id)
}

func (redisStatusCache) Set(ctx context.Context, id int64, status string, terminal bool) {
	if err := cache.SetRequestStatus(ctx, id, status, terminal); err != nil {
		logger.Logger.Warn("Failed to cache request status",
			zap.Int64("request_id", id),
			zap.Error(err),
		)
	}
}

// nopStatusCache 单测用，永远 miss
type nopStatusCache struct{}

func (nopStatusCache) Get(context.Context, int64) (string, bool) { return "", false }
func (nopStatusCache) Set(context.Context, int64, string, bool)  {}

type ApprovalService struct {
	db       *gorm.DB
	events   EventSink
	statuses StatusCache
}

func NewApprovalService(db *gorm.DB, events EventSink) *ApprovalService {
	return &ApprovalService{db: db, events: events, statuses: nopStatusCache{}}
}

// FileRequest 工人提交非当日日期申请，立刻返回 id 供轮询。
// 不做去重，同一 (项目, 人, 日期) 可以同时挂多条 pending。
func (s *ApprovalService) FileRequest(ctx context.Context, req dto.CreateDateRequest) (*dto.CreateDateResponse, error) {
	if req.ProjectCode == "" || req.UserName == "" || req.RequestedDate == "" {
		return nil, pkgerrors.ValidationError
	}

	record := &model.DateRequest{
		ProjectCode:   repository.NormalizeCode(req.ProjectCode),
		UserName:      req.UserName,
		RequestedDate: req.RequestedDate,
		Reason:        req.Reason,
		Status:        model.RequestStatusPending,
	}

	if err := repository.CreateDateRequest(s.db.WithContext(ctx), record); err != nil {
		return nil, fmt.Errorf("failed to create date request: %w", err)
	}

	s.events.ApprovalRequested(ctx, record)

	logger.Logger.Info("Date request filed",
		zap.Int64("request_id", record.ID),
		zap.String("project_code", record.ProjectCode),
		zap.String("requested_date", record.RequestedDate),
	)

	return &dto.CreateDateResponse{ID: record.ID}, nil
}

// Decide 管理员裁决。只允许 pending -> approved/rejected 的迁移，
// 已有终态的申请再裁返回 ALREADY_DECIDED，终态永不回退。
func (s *ApprovalService) Decide(ctx context.Context, id int64, decision string) error {
	status := model.RequestStatus(decision)
	if !status.ValidDecision() {
		return pkgerrors.InvalidDecision
	}

	db := s.db.WithContext(ctx)

	rows, err := repository.DecidePendingRequest(db, id, status)
	if err != nil {
		return fmt.Errorf("failed to decide request: %w", err)
	}
	if rows == 0 {
		if _, err := repository.GetDateRequestByID(db, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.RequestNotFound
			}
			return fmt.Errorf("failed to query request: %w", err)
		}
		return pkgerrors.AlreadyDecided
	}

	// 轮询缓存立即改写，裁决结果不等 TTL 过期
	s.statuses.Set(ctx, id, string(status), true)

	logger.Logger.Info("Date request decided",
		zap.Int64("request_id", id),
		zap.String("status", string(status)),
	)

	return nil
}

// ListPending 管理员待办队列，新的在前
func (s *ApprovalService) ListPending(ctx context.Context) ([]model.DateRequest, error) {
	return repository.ListPendingRequests(s.db.WithContext(ctx))
}

// GetStatus 轮询接口，只暴露状态字段
func (s *ApprovalService) GetStatus(ctx context.Context, id int64) (*dto.RequestStatusResponse, error) {
	if status, ok := s.statuses.Get(ctx, id); ok {
		return &dto.RequestStatusResponse{Status: status}, nil
	}

	record, err := repository.GetDateRequestByID(s.db.WithContext(ctx), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.RequestNotFound
		}
		return nil, fmt.Errorf("failed to query request: %w", err)
	}

	s.statuses.Set(ctx, record.ID, string(record.Status), record.Status.Terminal())

	return &dto.RequestStatusResponse{Status: string(record.Status)}, nil
}
