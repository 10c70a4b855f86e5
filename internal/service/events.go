package service

import (
	"context"

	"SiteOK/internal/model"
	"SiteOK/internal/queue"
	"SiteOK/internal/relay"
)

// EventSink 把业务事件交给通知侧。所有实现都必须是尽力而为：
// 事件发不出去不允许影响触发它的业务操作。
type EventSink interface {
	SessionOpened(ctx context.Context, log *model.AttendanceLog, projectCode string)
	ApprovalRequested(ctx context.Context, req *model.DateRequest)
	PasswordRequested(ctx context.Context, projectCode, workerName string)
}

// relaySink 生产实现：进程内 hub 推给 SSE 订阅者，同一份事件丢进 MQ 给 worker
type relaySink struct {
	hub *relay.Hub
}

func NewRelaySink() EventSink {
	return &relaySink{hub: relay.Default()}
}

func (s *relaySink) SessionOpened(ctx context.Context, log *model.AttendanceLog, projectCode string) {
	payload := map[string]string{
		"name":         log.Name,
		"project_code": projectCode,
		"date":         log.Date,
		"time_in":      log.TimeIn,
	}
	s.hub.Emit(relay.EventSessionOpened, payload)

	// 发布失败在 producer 里已经记过日志了，这里不再向上冒
	_ = queue.PublishSessionOpened(queue.SessionOpenedEvent{
		Name:        log.Name,
		ProjectCode: projectCode,
		Date:        log.Date,
		TimeIn:      log.TimeIn,
	})
}

func (s *relaySink) ApprovalRequested(ctx context.Context, req *model.DateRequest) {
	s.hub.Emit(relay.EventApprovalRequested, map[string]interface{}{
		"id":             req.ID,
		"project_code":   req.ProjectCode,
		"user_name":      req.UserName,
		"requested_date": req.RequestedDate,
	})

	_ = queue.PublishApprovalRequested(queue.ApprovalRequestedEvent{
		RequestID:     req.ID,
		ProjectCode:   req.ProjectCode,
		UserName:      req.UserName,
		RequestedDate: req.RequestedDate,
		Reason:        req.Reason,
	})
}

func (s *relaySink) PasswordRequested(ctx context.Context, projectCode, workerName string) {
	s.hub.Emit(relay.EventPasswordRequested, map[string]string{
		"code":       projectCode,
		"workerName": workerName,
	})
}

// NopSink 单测用
type NopSink struct{}

func (NopSink) SessionOpened(context.Context, *model.AttendanceLog, string) {}
func (NopSink) ApprovalRequested(context.Context, *model.DateRequest)       {}
func (NopSink) PasswordRequested(context.Context, string, string)           {}
