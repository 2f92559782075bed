package mirror

import (
	"context"
	"fmt"

	"solana-mirror/internal/domain"
	"solana-mirror/internal/logic/chart"
	"solana-mirror/internal/logic/parser"
	"solana-mirror/internal/rpcclient"
	"solana-mirror/internal/types"
)

// TransactionSource 是交易采集边界（由 rpcclient 实现）。
type TransactionSource interface {
	Transactions(ctx context.Context, address string, opts rpcclient.FetchOpts) ([]*domain.RawTransaction, error)
}

// Mirror 是余额重建流水线的入口：
// 原始交易 → 归一化 → 持仓快照推演 → 时间桶重采样 → 价格标注。
// 时钟与全部外部协作方显式注入，内部阶段不读取任何环境全局状态。
type Mirror struct {
	source    TransactionSource
	annotator *chart.Annotator
	clock     chart.Clock
	fetchOpts rpcclient.FetchOpts
}

func New(source TransactionSource, annotator *chart.Annotator, clock chart.Clock, fetchOpts rpcclient.FetchOpts) *Mirror {
	if clock == nil {
		clock = chart.SystemClock{}
	}
	return &Mirror{
		source:    source,
		annotator: annotator,
		clock:     clock,
		fetchOpts: fetchOpts,
	}
}

// Transactions 拉取并归一化主体账户的全部交易，按时间升序返回。
func (m *Mirror) Transactions(ctx context.Context, subject types.Pubkey) ([]*domain.ParsedTransaction, error) {
	raws, err := m.source.Transactions(ctx, subject.String(), m.fetchOpts)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions for %s: %w", subject, err)
	}

	parsed := make([]*domain.ParsedTransaction, 0, len(raws))
	for _, raw := range raws {
		tx, err := parser.ParseTransaction(raw, subject)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, tx)
	}
	return parsed, nil
}

// BalanceStates 返回逐笔交易的完整持仓快照序列。
func (m *Mirror) BalanceStates(ctx context.Context, subject types.Pubkey) ([]domain.BalanceState, error) {
	txs, err := m.Transactions(ctx, subject)
	if err != nil {
		return nil, err
	}
	return chart.BalanceStates(txs), nil
}

// ResampledStates 返回对齐到时间桶网格的快照序列（无价格，供只需余额的调用方使用）。
func (m *Mirror) ResampledStates(ctx context.Context, subject types.Pubkey, unit domain.TimeframeUnit, count int) ([]domain.BalanceState, error) {
	states, err := m.BalanceStates(ctx, subject)
	if err != nil {
		return nil, err
	}
	return chart.Resample(states, unit, count, m.clock.Now()), nil
}

// ChartData 返回带美元价格的完整图表序列。
func (m *Mirror) ChartData(ctx context.Context, subject types.Pubkey, unit domain.TimeframeUnit, count int) ([]domain.ChartPoint, error) {
	resampled, err := m.ResampledStates(ctx, subject, unit, count)
	if err != nil {
		return nil, err
	}
	return m.annotator.Annotate(ctx, resampled), nil
}
