package rpcclient

import (
	"context"
	"fmt"
	"sort"

	"solana-mirror/internal/domain"
	"solana-mirror/internal/utils"
	"solana-mirror/pkg/logger"
	pkgutils "solana-mirror/pkg/utils"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/mr-tron/base58"
)

// 同时在途的交易拉取批次数
const fetchBatchWorkers = 4

const (
	defaultBatchSize      = 100
	defaultSignatureLimit = 1000
)

// Client 封装 Solana JSON-RPC 访问，向外只暴露采集边界结构（domain.RawTransaction）。
// SDK 类型到边界结构的转换在此一次完成，下游解析逻辑不感知 SDK。
type Client struct {
	c *client.Client
}

func New(endpoint string) *Client {
	return &Client{c: client.NewClient(endpoint)}
}

// SignatureOpts 控制签名列表查询窗口。
type SignatureOpts struct {
	Before string // 从该签名之前开始（分页游标）
	Until  string // 到该签名为止（增量同步下界）
	Limit  int
}

// Signatures 返回地址的交易签名列表，源端顺序为从新到旧。
func (c *Client) Signatures(ctx context.Context, address string, opts SignatureOpts) ([]string, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSignatureLimit
	}
	list, err := c.c.GetSignaturesForAddressWithConfig(ctx, address, client.GetSignaturesForAddressConfig{
		Limit:  limit,
		Before: opts.Before,
		Until:  opts.Until,
	})
	if err != nil {
		return nil, fmt.Errorf("get signatures for %s: %w", address, err)
	}

	signatures := make([]string, 0, len(list))
	for _, item := range list {
		signatures = append(signatures, item.Signature)
	}
	return signatures, nil
}

// FetchOpts 控制交易拉取的批次形态。
type FetchOpts struct {
	BatchSize       int  // 单批签名数
	MaxTransactions int  // 累计拉取的签名总数上限（0 表示不限制）
	IncludeFailed   bool // 是否保留执行失败的交易
}

// Transactions 拉取地址的全部交易并转换为边界结构。
//
// 签名列表按 BatchSize 切批，各批并发拉取（批内逐签名请求），
// 汇合后统一按 blockTime 升序排序恢复时间顺序；单笔拉取失败只丢弃
// 该笔的贡献（记日志），不使整个序列失败。
func (c *Client) Transactions(ctx context.Context, address string, opts FetchOpts) ([]*domain.RawTransaction, error) {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	signatures, err := c.Signatures(ctx, address, SignatureOpts{})
	if err != nil {
		return nil, err
	}
	batches := utils.CreateBatches(signatures, batchSize, opts.MaxTransactions)

	batchResults := pkgutils.ParallelMap(batches, fetchBatchWorkers, func(batch []string) []*domain.RawTransaction {
		txs := make([]*domain.RawTransaction, 0, len(batch))
		for _, sig := range batch {
			tx, err := c.c.GetTransaction(ctx, sig)
			if err != nil {
				logger.Warnf("[rpcclient] 拉取交易失败: sig=%s err=%v", sig, err)
				continue
			}
			if tx == nil {
				continue // 无法解析的签名，下游直接过滤
			}
			txs = append(txs, convertTransaction(tx))
		}
		return txs
	})

	flat := make([]*domain.RawTransaction, 0, len(signatures))
	for _, batch := range batchResults {
		for _, tx := range batch {
			if tx == nil {
				continue
			}
			if !opts.IncludeFailed && tx.Failed() {
				continue
			}
			flat = append(flat, tx)
		}
	}

	sort.SliceStable(flat, func(i, j int) bool {
		return flat[i].BlockTime < flat[j].BlockTime
	})
	return flat, nil
}

// Transaction 拉取单笔交易并转换为边界结构；签名无法解析时返回 nil。
func (c *Client) Transaction(ctx context.Context, signature string) (*domain.RawTransaction, error) {
	tx, err := c.c.GetTransaction(ctx, signature)
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", signature, err)
	}
	if tx == nil {
		return nil, nil
	}
	return convertTransaction(tx), nil
}

// TokenDecimals 通过 token supply 查询解析 mint 精度。
func (c *Client) TokenDecimals(ctx context.Context, mint string) (uint8, error) {
	supply, err := c.c.GetTokenSupply(ctx, mint)
	if err != nil {
		return 0, fmt.Errorf("get token supply for %s: %w", mint, err)
	}
	return supply.Decimals, nil
}

// convertTransaction 将 SDK 交易结构一次性转换为采集边界结构。
func convertTransaction(tx *client.Transaction) *domain.RawTransaction {
	raw := &domain.RawTransaction{BlockTime: -1}
	if tx.BlockTime != nil {
		raw.BlockTime = *tx.BlockTime
	}

	for _, sig := range tx.Transaction.Signatures {
		raw.Signatures = append(raw.Signatures, base58.Encode(sig))
	}
	for _, key := range tx.Transaction.Message.Accounts {
		raw.AccountKeys = append(raw.AccountKeys, key.ToBase58())
	}

	if tx.Meta == nil {
		return raw
	}
	meta := &domain.RawTransactionMeta{
		Err:         tx.Meta.Err,
		LogMessages: tx.Meta.LogMessages,
	}
	for _, b := range tx.Meta.PreBalances {
		meta.PreBalances = append(meta.PreBalances, uint64(b))
	}
	for _, b := range tx.Meta.PostBalances {
		meta.PostBalances = append(meta.PostBalances, uint64(b))
	}
	for _, tb := range tx.Meta.PreTokenBalances {
		meta.PreTokenBalances = append(meta.PreTokenBalances, convertTokenBalance(tb))
	}
	for _, tb := range tx.Meta.PostTokenBalances {
		meta.PostTokenBalances = append(meta.PostTokenBalances, convertTokenBalance(tb))
	}
	raw.Meta = meta
	return raw
}

func convertTokenBalance(tb rpc.TransactionMetaTokenBalance) domain.RawTokenBalance {
	return domain.RawTokenBalance{
		AccountIndex: int(tb.AccountIndex),
		Mint:         tb.Mint,
		Owner:        tb.Owner,
		Amount:       tb.UITokenAmount.Amount,
		Decimals:     tb.UITokenAmount.Decimals,
	}
}
