package mirror

import (
	"context"
	"testing"
	"time"

	"solana-mirror/internal/consts"
	"solana-mirror/internal/domain"
	"solana-mirror/internal/logic/chart"
	"solana-mirror/internal/logic/parser"
	"solana-mirror/internal/rpcclient"
	"solana-mirror/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSubject = types.Pubkey{0x01}

// fakeSource 返回预置的原始交易序列。
type fakeSource struct {
	txs []*domain.RawTransaction
	err error
}

func (f *fakeSource) Transactions(context.Context, string, rpcclient.FetchOpts) ([]*domain.RawTransaction, error) {
	return f.txs, f.err
}

func rawDeposit(blockTime int64, preLamports, postLamports uint64) *domain.RawTransaction {
	return &domain.RawTransaction{
		BlockTime:   blockTime,
		Signatures:  []string{"sig"},
		AccountKeys: []string{testSubject.String()},
		Meta: &domain.RawTransactionMeta{
			PreBalances:  []uint64{preLamports},
			PostBalances: []uint64{postLamports},
		},
	}
}

// 测试流水线贯通：原始交易 → 归一化 → 快照 → 重采样
func TestMirror_Pipeline(t *testing.T) {
	now := time.Unix(1700000000, 0)
	source := &fakeSource{txs: []*domain.RawTransaction{
		rawDeposit(1690000000, 0, consts.LamportsPerSOL),
		rawDeposit(1695000000, consts.LamportsPerSOL, 3*consts.LamportsPerSOL),
	}}
	m := New(source, nil, chart.FixedClock{T: now}, rpcclient.FetchOpts{})

	txs, err := m.Transactions(context.Background(), testSubject)
	require.NoError(t, err)
	require.Equal(t, 2, len(txs))

	states, err := m.BalanceStates(context.Background(), testSubject)
	require.NoError(t, err)
	require.Equal(t, 2, len(states))
	assert.InDelta(t, 3.0, states[1].Balances[consts.SOLMintStr].Formatted, 1e-12)

	resampled, err := m.ResampledStates(context.Background(), testSubject, domain.TimeframeHour, 2)
	require.NoError(t, err)
	require.Equal(t, 3, len(resampled), "2 个桶加合成尾点")
	assert.Equal(t, now.Unix(), resampled[2].Timestamp)
}

// 测试结构性畸形交易向上传播
func TestMirror_MalformedPropagates(t *testing.T) {
	source := &fakeSource{txs: []*domain.RawTransaction{{BlockTime: 1}}}
	m := New(source, nil, nil, rpcclient.FetchOpts{})

	_, err := m.Transactions(context.Background(), testSubject)
	assert.ErrorIs(t, err, parser.ErrMalformedTransaction)
}

// 测试采集失败向上传播
func TestMirror_SourceError(t *testing.T) {
	source := &fakeSource{err: assert.AnError}
	m := New(source, nil, nil, rpcclient.FetchOpts{})

	_, err := m.BalanceStates(context.Background(), testSubject)
	assert.Error(t, err)
}
