package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpc"
)

const DefaultCoinGeckoEndpoint = "https://api.coingecko.com/api/v3"

// CoinGeckoClient 是基于 CoinGecko market_chart/range 接口的历史价格源。
// 返回粒度由区间长度决定（≤1 天约 5 分钟级，≤90 天小时级，更长为天级），
// 调用方以实际返回的间距推断采样间隔。
type CoinGeckoClient struct {
	endpoint string
	currency string
}

func NewCoinGeckoClient(endpoint string) *CoinGeckoClient {
	if endpoint == "" {
		endpoint = DefaultCoinGeckoEndpoint
	}
	return &CoinGeckoClient{endpoint: endpoint, currency: "usd"}
}

type marketChartResponse struct {
	Prices [][2]float64 `json:"prices"` // [毫秒时间戳, 价格]
}

// RangeQuery 拉取 [from, to] 区间（Unix 秒）的价格序列，按时间升序返回。
func (c *CoinGeckoClient) RangeQuery(ctx context.Context, priceID string, from, to int64) ([]PricePoint, error) {
	url := fmt.Sprintf("%s/coins/%s/market_chart/range?vs_currency=%s&from=%d&to=%d",
		c.endpoint, priceID, c.currency, from, to)

	resp, err := httpc.Do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("coingecko range query %s: %w", priceID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko range query %s: status %d", priceID, resp.StatusCode)
	}

	var body marketChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("coingecko range query %s: decode: %w", priceID, err)
	}

	points := make([]PricePoint, 0, len(body.Prices))
	for _, p := range body.Prices {
		points = append(points, PricePoint{
			Timestamp: int64(p[0]) / 1000, // 毫秒 → 秒
			Price:     p[1],
		})
	}
	return points, nil
}
