package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"

	"solana-mirror/internal/consts"
	"solana-mirror/pkg/logger"

	"github.com/zeromicro/go-zero/rest/httpc"
)

const DefaultJupiterEndpoint = "https://quote-api.jup.ag/v6"

// JupiterClient 是基于 Jupiter 聚合器报价接口的实时价格源。
// 以 10^decimalsA 的最小单位数量询价，结果除以 10^decimalsB 得到单位价格。
// 相同资产对返回精确的 1；任何失败（询价、精度解析）返回 0，永不报错。
type JupiterClient struct {
	endpoint string
	decimals DecimalsSource

	mu    sync.RWMutex
	cache map[string]uint8 // mint → decimals，询价前解析一次后复用
}

func NewJupiterClient(endpoint string, decimals DecimalsSource) *JupiterClient {
	if endpoint == "" {
		endpoint = DefaultJupiterEndpoint
	}
	return &JupiterClient{
		endpoint: endpoint,
		decimals: decimals,
		cache: map[string]uint8{
			// 常用报价币精度内置，避免冷启动多一次 RPC
			consts.SOLMintStr:  consts.SOLDecimals,
			consts.USDCMintStr: consts.USDCDecimals,
		},
	}
}

type quoteResponse struct {
	OutAmount string `json:"outAmount"`
}

// Quote 返回 inputMint 以 outputMint 计价的即时价格。
func (c *JupiterClient) Quote(ctx context.Context, inputMint, outputMint string) float64 {
	if inputMint == outputMint {
		return 1
	}

	decimalsIn, ok := c.tokenDecimals(ctx, inputMint)
	if !ok {
		return 0
	}
	decimalsOut, ok := c.tokenDecimals(ctx, outputMint)
	if !ok {
		return 0
	}

	amount := int64(math.Pow10(int(decimalsIn)))
	url := fmt.Sprintf("%s/quote?inputMint=%s&outputMint=%s&amount=%d",
		c.endpoint, inputMint, outputMint, amount)

	resp, err := httpc.Do(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger.Warnf("[JupiterClient] 询价失败: mint=%s err=%v", inputMint, err)
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warnf("[JupiterClient] 询价失败: mint=%s status=%d", inputMint, resp.StatusCode)
		return 0
	}

	var body quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0
	}
	out, err := strconv.ParseFloat(body.OutAmount, 64)
	if err != nil {
		return 0
	}
	return out / math.Pow10(int(decimalsOut))
}

func (c *JupiterClient) tokenDecimals(ctx context.Context, mint string) (uint8, bool) {
	c.mu.RLock()
	d, ok := c.cache[mint]
	c.mu.RUnlock()
	if ok {
		return d, true
	}

	if c.decimals == nil {
		return 0, false
	}
	d, err := c.decimals.TokenDecimals(ctx, mint)
	if err != nil {
		logger.Warnf("[JupiterClient] 精度解析失败: mint=%s err=%v", mint, err)
		return 0, false
	}

	c.mu.Lock()
	c.cache[mint] = d
	c.mu.Unlock()
	return d, true
}
