package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"SiteOK/config"
	"SiteOK/internal/queue"
	"SiteOK/pkg/logger"
	"SiteOK/pkg/snowflake"
	"SiteOK/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	logger.Logger.Info("Worker service starting",
		zap.String("service", "siteok-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	go queue.StartAllConsumers(ctx)

	// 消费循环靠 MQ 连接关闭退出，这里只等关停信号，
	// defer 的 storage.Close 会断开连接让消费者收尾
	<-ctx.Done()

	logger.Logger.Info("Worker service shutting down gracefully")
}
