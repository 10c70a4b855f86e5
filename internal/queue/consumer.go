package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"SiteOK/internal/cache"
	"SiteOK/internal/repository"
	"SiteOK/pkg/email"
	"SiteOK/pkg/logger"
	"SiteOK/storage/database"
	"SiteOK/storage/mq"
)

// StartApprovalEmailConsumer 消费日期放行申请事件，给项目管理员发提醒邮件
func StartApprovalEmailConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg ApprovalRequestedEvent
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal approval requested event: %w", err)
		}

		// SETNX 去重，MQ 至少一次投递，邮件不能重复发
		fresh, err := cache.MarkApprovalNotified(ctx, msg.MessageID)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// 检查失败继续处理，宁可重发也不丢
		} else if !fresh {
			logger.Logger.Info("Message already processed, skipping",
				zap.String("message_id", msg.MessageID),
				zap.Int64("request_id", msg.RequestID),
			)
			return nil
		}

		db := database.DB().WithContext(ctx)
		project, err := repository.GetProjectByCode(db, msg.ProjectCode)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				// 项目没了就没人可通知，丢弃而不是重试
				logger.Logger.Warn("Project gone, dropping approval notification",
					zap.String("project_code", msg.ProjectCode),
					zap.Int64("request_id", msg.RequestID),
				)
				return nil
			}
			return fmt.Errorf("failed to query project: %w", err)
		}

		if project.AdminEmail == "" {
			logger.Logger.Info("Project has no admin email, skipping notification",
				zap.String("project_code", msg.ProjectCode),
			)
			return nil
		}

		err = email.SendApprovalRequested(project.AdminEmail, project.Code, msg.UserName, msg.RequestedDate)
		if err != nil {
			return fmt.Errorf("failed to send approval email: %w", err)
		}

		logger.Logger.Info("Sent approval requested email",
			zap.String("message_id", msg.MessageID),
			zap.Int64("request_id", msg.RequestID),
			zap.String("project_code", project.Code),
		)

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.ApprovalQueue,
		ConsumerTag:   "approval_email_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// StartAllConsumers 启动所有消费者（worker 启动时调用）
func StartAllConsumers(ctx context.Context) {
	var wg sync.WaitGroup

	consumers := []struct {
		name     string
		consumer func(context.Context) error
	}{
		{"approval_email", StartApprovalEmailConsumer},
	}

	for _, c := range consumers {
		wg.Add(1)
		go func(name string, consumer func(context.Context) error) {
			defer wg.Done()

			logger.Logger.Info("Starting consumer",
				zap.String("consumer_name", name),
			)

			if err := consumer(ctx); err != nil {
				logger.Logger.Error("Consumer exited with error",
					zap.String("consumer_name", name),
					zap.Error(err),
				)
			}
		}(c.name, c.consumer)
	}

	wg.Wait()
}
