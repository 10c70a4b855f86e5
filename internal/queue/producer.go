package queue

import (
	"fmt"

	"go.uber.org/zap"

	"SiteOK/pkg/logger"
	"SiteOK/pkg/snowflake"
	"SiteOK/storage/mq"
)

// PublishSessionOpened 发布新签到事件
func PublishSessionOpened(msg SessionOpenedEvent) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.String("project_code", msg.ProjectCode),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("session_opened_%d", id)
	}

	err := mq.PublishMessage(mq.EventExchange, mq.RoutingKeySessionOpened, msg)
	if err != nil {
		logger.Logger.Error("Failed to publish session opened event",
			zap.String("message_id", msg.MessageID),
			zap.String("project_code", msg.ProjectCode),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published session opened event",
		zap.String("message_id", msg.MessageID),
		zap.String("project_code", msg.ProjectCode),
		zap.String("date", msg.Date),
	)

	return nil
}

// PublishApprovalRequested 发布日期放行申请事件，worker 端据此给管理员发邮件
func PublishApprovalRequested(msg ApprovalRequestedEvent) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.Int64("request_id", msg.RequestID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("approval_requested_%d", id)
	}

	err := mq.PublishMessage(mq.EventExchange, mq.RoutingKeyApprovalRequested, msg)
	if err != nil {
		logger.Logger.Error("Failed to publish approval requested event",
			zap.String("message_id", msg.MessageID),
			zap.Int64("request_id", msg.RequestID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published approval requested event",
		zap.String("message_id", msg.MessageID),
		zap.Int64("request_id", msg.RequestID),
		zap.String("project_code", msg.ProjectCode),
	)

	return nil
}
