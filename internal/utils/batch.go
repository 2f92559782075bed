package utils

// CreateBatches 将有序列表按 size 切分为连续分片，保持原始顺序。
// limit > 0 时限制所有分片累计的元素总数：最后一个分片会被截断，
// 累计数量达到 limit 后立即停止。limit <= 0 表示不限制。
// 空输入返回空结果，永远不会产生空分片。
func CreateBatches[T any](items []T, size int, limit int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	batches := make([][]T, 0, (len(items)+size-1)/size)
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end])
	}
	return batches
}
