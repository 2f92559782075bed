package handler

import (
	"net/http"

	"solana-mirror/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

// RegisterHandlers 注册全部对外路由。
func RegisterHandlers(server *rest.Server, ctx *svc.ServiceContext) {
	server.AddRoutes([]rest.Route{
		{
			Method:  http.MethodGet,
			Path:    "/transactions/:address",
			Handler: TransactionsHandler(ctx),
		},
		{
			Method:  http.MethodGet,
			Path:    "/chart/:address/:timeframe",
			Handler: ChartHandler(ctx),
		},
	})
}
