package handler

import (
	"context"
	"encoding/json"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/sse"
	"go.uber.org/zap"

	"SiteOK/internal/relay"
	"SiteOK/pkg/logger"
)

// StreamEvents 管理端实时通知流。
// GET /v1/events
// 断线不补发，订阅者只收在线期间的事件。
func StreamEvents(ctx context.Context, c *app.RequestContext) {
	stream := sse.NewStream(c)

	id, events := relay.Default().Subscribe()
	defer relay.Default().Unsubscribe(id)

	logger.Logger.Info("Event stream opened", zap.String("subscriber", id))

	for {
		select {
		case <-ctx.Done():
			logger.Logger.Info("Event stream closed", zap.String("subscriber", id))
			return
		case ev, ok := <-events:
			if !ok {
				return
			}

			data, err := json.Marshal(ev.Data)
			if err != nil {
				logger.Logger.Warn("Failed to marshal event payload",
					zap.String("event", ev.Name),
					zap.Error(err),
				)
				continue
			}

			if err := stream.Publish(&sse.Event{
				Event: ev.Name,
				Data:  data,
			}); err != nil {
				// 客户端断开了，退出让 defer 清订阅
				logger.Logger.Info("Event stream disconnected",
					zap.String("subscriber", id),
					zap.Error(err),
				)
				return
			}
		}
	}
}
