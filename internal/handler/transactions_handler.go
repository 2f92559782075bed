package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"solana-mirror/internal/domain"
	"solana-mirror/internal/svc"
	"solana-mirror/internal/types"
	"solana-mirror/pkg/logger"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// TransactionsRequest 交易列表请求参数。
type TransactionsRequest struct {
	Address string `path:"address"`
	Index   string `form:"index,optional"` // "a-b" 截取区间
}

// TransactionsResponse 交易列表响应体。
// Count 为截取前的全量交易数，供前端分页使用。
type TransactionsResponse struct {
	Transactions []*domain.ParsedTransaction `json:"transactions"`
	Count        int                         `json:"count"`
}

// TransactionsHandler 返回主体账户的归一化交易列表。
// 可选参数 index=a-b 截取 [a, b) 区间（越界自动收敛）。
func TransactionsHandler(ctx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TransactionsRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.WriteJson(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		subject, err := types.TryPubkeyFromBase58(req.Address)
		if err != nil {
			httpx.WriteJson(w, http.StatusBadRequest, map[string]string{"error": "invalid address"})
			return
		}

		txs, err := ctx.Mirror.Transactions(r.Context(), subject)
		if err != nil {
			logger.Errorf("[TransactionsHandler] 拉取失败: address=%s err=%v", req.Address, err)
			httpx.WriteJson(w, http.StatusBadGateway, map[string]string{"error": "failed to fetch transactions"})
			return
		}

		total := len(txs)
		if req.Index != "" {
			from, to, err := parseIndexRange(req.Index, total)
			if err != nil {
				httpx.WriteJson(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			txs = txs[from:to]
		}

		httpx.OkJson(w, TransactionsResponse{Transactions: txs, Count: total})
	}
}

// parseIndexRange 解析 "a-b" 形式的截取区间并收敛到 [0, total]。
func parseIndexRange(s string, total int) (int, int, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid index range %q", s)
	}
	from, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid index range %q", s)
	}
	to, err := strconv.Atoi(parts[1])
	if err != nil || from < 0 || to < from {
		return 0, 0, fmt.Errorf("invalid index range %q", s)
	}
	if from > total {
		from = total
	}
	if to > total {
		to = total
	}
	return from, to, nil
}
