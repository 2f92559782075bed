package parser

import (
	"errors"
	"strings"

	"solana-mirror/internal/consts"
	"solana-mirror/internal/domain"
	"solana-mirror/internal/types"
)

// ErrMalformedTransaction 表示交易结构性缺失（账户列表与 meta 同时为空），
// 无法做任何最努力解析，是解析阶段唯一会向上传播的错误。
var ErrMalformedTransaction = errors.New("malformed transaction: missing both account keys and meta")

// ParseTransaction 以 subject 账户视角将一笔原始交易归一化为余额增量结构。
//
// 规则：
//   - 原生 SOL：在静态账户列表中定位 subject 下标，取 pre/postBalances；
//     subject 不在列表中按 0 处理；pre == post 时不产出条目（过滤无变动噪音）。
//   - SPL Token：按 owner == subject 过滤 pre/postTokenBalances，按 mint 合并；
//     只出现在单侧的资产，缺失侧补 0。
//   - 指令名：扫描日志中固定前缀并剥离；日志缺失/畸形产出空列表，不报错。
//
// 除 ErrMalformedTransaction 外，缺失字段一律降级为零值，保证尽力而为的结果。
func ParseTransaction(tx *domain.RawTransaction, subject types.Pubkey) (*domain.ParsedTransaction, error) {
	if tx == nil || (len(tx.AccountKeys) == 0 && tx.Meta == nil) {
		return nil, ErrMalformedTransaction
	}

	balances := make(map[string]domain.BalanceChange)
	subjectStr := subject.String()

	// 原生 SOL
	ownerIdx := -1
	for i, key := range tx.AccountKeys {
		if key == subjectStr {
			ownerIdx = i
			break
		}
	}

	var preSol, postSol uint64
	if tx.Meta != nil && ownerIdx >= 0 {
		if ownerIdx < len(tx.Meta.PreBalances) {
			preSol = tx.Meta.PreBalances[ownerIdx]
		}
		if ownerIdx < len(tx.Meta.PostBalances) {
			postSol = tx.Meta.PostBalances[ownerIdx]
		}
	}
	if preSol != postSol {
		balances[consts.SOLMintStr] = domain.BalanceChange{
			Pre:  types.AmountFromUint64(preSol, consts.SOLDecimals),
			Post: types.AmountFromUint64(postSol, consts.SOLDecimals),
		}
	}

	// SPL Token
	if tx.Meta != nil {
		for _, pre := range tx.Meta.PreTokenBalances {
			if pre.Owner != subjectStr {
				continue
			}
			change := balances[pre.Mint]
			if change.Post.Raw == nil {
				change.Post = types.ZeroAmount()
			}
			change.Pre = types.AmountFromString(pre.Amount, pre.Decimals)
			balances[pre.Mint] = change
		}
		for _, post := range tx.Meta.PostTokenBalances {
			if post.Owner != subjectStr {
				continue
			}
			change := balances[post.Mint]
			if change.Pre.Raw == nil {
				change.Pre = types.ZeroAmount()
			}
			change.Post = types.AmountFromString(post.Amount, post.Decimals)
			balances[post.Mint] = change
		}
	}

	return &domain.ParsedTransaction{
		BlockTime:          tx.BlockTime,
		Signatures:         tx.Signatures,
		Logs:               logMessages(tx),
		Balances:           balances,
		ParsedInstructions: parseInstructions(tx),
	}, nil
}

func logMessages(tx *domain.RawTransaction) []string {
	if tx.Meta == nil {
		return nil
	}
	return tx.Meta.LogMessages
}

// parseInstructions 从交易日志中解出指令名列表（尽力而为，保持日志顺序）。
func parseInstructions(tx *domain.RawTransaction) []string {
	if tx.Meta == nil {
		return []string{}
	}
	instructions := make([]string, 0, 4)
	for _, line := range tx.Meta.LogMessages {
		if strings.HasPrefix(line, consts.InstructionLogPrefix) {
			instructions = append(instructions, strings.TrimPrefix(line, consts.InstructionLogPrefix))
		}
	}
	return instructions
}
