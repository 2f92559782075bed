package utils

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 测试结果顺序与输入一一对应
func TestParallelMap_Order(t *testing.T) {
	input := []int{5, 3, 8, 1, 9, 2}
	out := ParallelMap(input, 3, func(v int) int {
		// 人为错开完成时间，验证槽位写入不受调度顺序影响
		time.Sleep(time.Duration(v) * time.Millisecond)
		return v * 10
	})

	assert.Equal(t, []int{50, 30, 80, 10, 90, 20}, out, "结果应与输入顺序一一对应")
}

// 测试空输入与单元素输入
func TestParallelMap_Edge(t *testing.T) {
	assert.Equal(t, []int{}, ParallelMap([]int{}, 4, func(v int) int { return v }), "空输入应返回空结果")
	assert.Equal(t, []int{42}, ParallelMap([]int{21}, 4, func(v int) int { return v * 2 }), "单元素应直接执行")
}

// 测试并发上限：同时在途的 goroutine 不超过 workers
func TestParallelMap_WorkerLimit(t *testing.T) {
	const workers = 2
	var current, peak int32

	input := make([]int, 16)
	ParallelMap(input, workers, func(int) struct{} {
		n := atomic.AddInt32(&current, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&current, -1)
		return struct{}{}
	})

	assert.LessOrEqual(t, peak, int32(workers), "同时在途的任务数不应超过 workers")
}

// 测试 workers 非法值兜底
func TestParallelMap_InvalidWorkers(t *testing.T) {
	out := ParallelMap([]int{1, 2, 3}, 0, func(v int) int { return v + 1 })
	assert.Equal(t, []int{2, 3, 4}, out, "workers <= 0 应按 1 处理且结果完整")
}
