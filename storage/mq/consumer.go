package mq

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"SiteOK/pkg/logger"
)

type MessageHandler func([]byte) error

type ConsumeOptions struct {
	Queue         string
	ConsumerTag   string
	PrefetchCount int
	Handler       MessageHandler
}

// Consume 在调用方的 goroutine 里阻塞消费一个队列，
// 处理失败 nack 重入队，连接关闭后投递通道耗尽即返回
func Consume(opts ConsumeOptions) error {
	conn := Connection()
	if conn == nil {
		return errors.New("mq: connection not initialized")
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("mq: open channel: %w", err)
	}
	defer ch.Close()

	if opts.PrefetchCount > 0 {
		if err := ch.Qos(opts.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("mq: set qos: %w", err)
		}
	}

	// 手动 ack，其余开关全关
	deliveries, err := ch.Consume(opts.Queue, opts.ConsumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("mq: register consumer: %w", err)
	}

	logger.Logger.Info("Consumer started",
		zap.String("queue", opts.Queue),
		zap.String("consumer_tag", opts.ConsumerTag),
	)

	for d := range deliveries {
		if err := opts.Handler(d.Body); err != nil {
			logger.Logger.Error("Message handler failed, requeueing",
				zap.String("queue", opts.Queue),
				zap.Error(err),
			)
			_ = d.Nack(false, true)
			continue
		}
		_ = d.Ack(false)
	}

	return nil
}
