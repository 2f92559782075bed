package utils

import "sync"

// ParallelMap 并发地将 fn 应用到 input 的每个元素，结果与输入顺序一一对应。
// workers 限制同时执行的 goroutine 数；每个结果写入各自的预分配槽位，
// 不存在跨协程共享的可变结构，汇合后一次性返回。
//   - 空输入直接返回空结果
//   - 单元素输入直接在当前协程执行，不启用并发
func ParallelMap[I, O any](input []I, workers int, fn func(I) O) []O {
	if len(input) == 0 {
		return []O{}
	}
	if len(input) == 1 {
		return []O{fn(input[0])}
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(input) {
		workers = len(input)
	}

	results := make([]O, len(input))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i := range input {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer func() {
				<-sem
				wg.Done()
			}()
			results[idx] = fn(input[idx])
		}(i)
	}

	wg.Wait()
	return results
}
