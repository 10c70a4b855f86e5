package relay

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"SiteOK/config"
	"SiteOK/pkg/logger"
)

// 事件名沿用前端已经在监听的口径
const (
	EventSessionOpened     = "newAttendance"
	EventApprovalRequested = "newDateRequest"
	EventPasswordRequested = "passwordRequest"
)

type Event struct {
	Name string      `json:"event"`
	Data interface{} `json:"data"`
}

// Hub 是进程内的事件分发器，管理端通过 SSE 订阅实时通知。
// 发布方永远不等订阅方：慢消费者的缓冲满了就丢事件，通知丢了
// 下次刷新列表也能看到，不值得让签到路径阻塞。
type Hub struct {
	mu   sync.RWMutex
	subs map[string]chan Event
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan Event)}
}

// Subscribe 返回订阅 id 和事件通道，通道由 Unsubscribe 关闭
func (h *Hub) Subscribe() (string, <-chan Event) {
	size := config.Cfg.EventBufferSize
	if size <= 0 {
		size = 16
	}

	id := uuid.NewString()
	ch := make(chan Event, size)

	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()

	return id, ch
}

func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	ch, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
	}
	h.mu.Unlock()

	if ok {
		close(ch)
	}
}

// Emit 把事件广播给所有在线订阅者，永不阻塞、永不失败
func (h *Hub) Emit(name string, data interface{}) {
	ev := Event{Name: name, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			logger.Logger.Warn("relay subscriber too slow, event dropped",
				zap.String("subscriber", id),
				zap.String("event", name),
			)
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

var (
	defaultHub *Hub
	once       sync.Once
)

func Default() *Hub {
	once.Do(func() {
		defaultHub = NewHub()
	})
	return defaultHub
}
