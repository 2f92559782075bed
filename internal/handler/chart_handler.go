package handler

import (
	"net/http"

	"solana-mirror/internal/domain"
	"solana-mirror/internal/svc"
	"solana-mirror/internal/types"
	"solana-mirror/pkg/logger"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// ChartRequest 图表请求参数。
type ChartRequest struct {
	Address   string `path:"address"`
	Timeframe string `path:"timeframe"`         // 形如 "30d" / "24h"
	Detailed  bool   `form:"detailed,optional"` // true 返回逐资产明细
}

// ChartSummaryPoint 是简化图表点：只含时间戳与美元总值。
type ChartSummaryPoint struct {
	Timestamp int64   `json:"timestamp"`
	UsdValue  float64 `json:"usdValue"`
}

// ChartHandler 返回主体账户的图表序列。
// 超出小时级范围上限的请求得到空序列，不视为错误。
func ChartHandler(ctx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChartRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.WriteJson(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		subject, err := types.TryPubkeyFromBase58(req.Address)
		if err != nil {
			httpx.WriteJson(w, http.StatusBadRequest, map[string]string{"error": "invalid address"})
			return
		}
		count, unit, err := domain.ParseTimeframe(req.Timeframe)
		if err != nil {
			httpx.WriteJson(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		points, ok := ctx.ChartCache.Get(r.Context(), req.Address, count, unit)
		if !ok {
			points, err = ctx.Mirror.ChartData(r.Context(), subject, unit, count)
			if err != nil {
				logger.Errorf("[ChartHandler] 图表计算失败: address=%s err=%v", req.Address, err)
				httpx.WriteJson(w, http.StatusBadGateway, map[string]string{"error": "failed to build chart"})
				return
			}
			ctx.ChartCache.Set(r.Context(), req.Address, count, unit, points)
		}

		if req.Detailed {
			if points == nil {
				points = []domain.ChartPoint{}
			}
			httpx.OkJson(w, points)
			return
		}

		summary := make([]ChartSummaryPoint, 0, len(points))
		for _, p := range points {
			summary = append(summary, ChartSummaryPoint{Timestamp: p.Timestamp, UsdValue: p.UsdValue})
		}
		httpx.OkJson(w, summary)
	}
}
