package poll

import (
	"context"
	"errors"
	"time"
)

// 移动端提交非当日补卡后靠轮询拿审批结果，推送只是加速，不作为唯一信号。
// Poller 封装这个固定间隔的轮询循环：状态离开 pending 或 ctx 取消即停止，
// ticker 随 Run 返回一并释放，不会在页面销毁后继续泄漏。
//
// 服务端自身不轮询，这个包是给 Go 客户端（集成方、巡检脚本）对
// GET /v1/requests/:id 用的，服务端代码里没有调用方是正常的。

const DefaultInterval = 3 * time.Second

var ErrNoFetcher = errors.New("poll: fetch func is required")

// StatusFunc 查询一次被观察对象的当前状态。
type StatusFunc func(ctx context.Context) (string, error)

type Poller struct {
	// Fetch 必填，每个周期调用一次
	Fetch StatusFunc
	// Interval 为 0 时使用 DefaultInterval
	Interval time.Duration
	// IsTerminal 为空时默认 status != "pending" 即终态
	IsTerminal func(status string) bool
}

// Run 阻塞轮询直到出现终态或 ctx 取消，返回最后一次观察到的状态。
// 单次查询失败不会终止循环，下个周期继续重试。
func (p *Poller) Run(ctx context.Context) (string, error) {
	if p.Fetch == nil {
		return "", ErrNoFetcher
	}

	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	isTerminal := p.IsTerminal
	if isTerminal == nil {
		isTerminal = func(status string) bool { return status != "pending" }
	}

	var last string

	// 先查一次，避免白等一个完整周期
	if status, err := p.Fetch(ctx); err == nil {
		last = status
		if isTerminal(status) {
			return status, nil
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-ticker.C:
			status, err := p.Fetch(ctx)
			if err != nil {
				continue
			}
			last = status
			if isTerminal(status) {
				return status, nil
			}
		}
	}
}
