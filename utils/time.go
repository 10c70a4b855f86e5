package utils

import (
	"fmt"
	"math"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseClock 解析 HH:MM（或 HH:MM:SS）并应用到指定工作日期
func ParseClock(clock string, date time.Time) (time.Time, error) {
	if clock == "" {
		return date, fmt.Errorf("empty clock string")
	}

	parsed, err := time.Parse(ClockLayout, clock)
	if err != nil {
		parsed, err = time.Parse("15:04:05", clock)
		if err != nil {
			return date, err
		}
	}

	return time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		parsed.Hour(),
		parsed.Minute(),
		parsed.Second(),
		0,
		date.Location(),
	), nil
}

// NowClock 当前墙钟时间，截断到分钟，格式 HH:MM
func NowClock() string {
	return time.Now().Format(ClockLayout)
}

// Hours 计算一条出勤记录的工时：date + time_in/time_out 合成墙钟时刻后相减，
// 毫秒转小时，负值归零（不建模跨夜班次），保留两位小数。
func Hours(date, timeIn, timeOut string) (float64, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}

	start, err := ParseClock(timeIn, day)
	if err != nil {
		return 0, fmt.Errorf("invalid time_in %q: %w", timeIn, err)
	}

	end, err := ParseClock(timeOut, day)
	if err != nil {
		return 0, fmt.Errorf("invalid time_out %q: %w", timeOut, err)
	}

	hours := float64(end.Sub(start).Milliseconds()) / (1000 * 60 * 60)
	if hours < 0 {
		hours = 0
	}

	return math.Round(hours*100) / 100, nil
}

// Today 今天的日期串，和移动端提交的 date 字段同格式
func Today() string {
	return time.Now().Format(DateLayout)
}
