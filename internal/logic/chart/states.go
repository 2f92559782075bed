package chart

import (
	"solana-mirror/internal/domain"
	"solana-mirror/internal/types"
)

// BalanceStates 按时间顺序消费归一化交易，产出逐笔的完整持仓快照。
// 每笔输入交易对应一个输出快照，顺序不变（输入假定已按时间排序，此处不排序）。
//
// 维护一份运行中的持仓表：
//   - 每笔交易从上一笔的快照浅拷贝出发；
//   - post 可读数量为 0 的资产从表中移除（幂等，资产不存在时移除同样成立）；
//   - 资产不存在或可读数量发生变化时以 post 覆盖；
//   - 未被本笔交易触及的资产原样带过。
//
// 不变量：任一快照等于截至该笔交易全部增量的净效果，且不保留零余额资产。
func BalanceStates(txs []*domain.ParsedTransaction) []domain.BalanceState {
	states := make([]domain.BalanceState, 0, len(txs))
	current := make(map[string]types.Amount)

	for _, tx := range txs {
		next := make(map[string]types.Amount, len(current)+len(tx.Balances))
		for mint, amount := range current {
			next[mint] = amount
		}

		for mint, change := range tx.Balances {
			if change.Post.IsZero() {
				delete(next, mint)
				continue
			}
			if prev, ok := next[mint]; !ok || prev.Formatted != change.Post.Formatted {
				next[mint] = change.Post
			}
		}

		states = append(states, domain.BalanceState{
			Timestamp: tx.BlockTime,
			Balances:  next,
		})
		current = next
	}

	return states
}
