package chart

import "time"

// Clock 提供"当前时间"，由调用方注入，纯逻辑阶段不读环境全局时间。
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系统时间。
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock 返回固定时间，测试专用。
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
