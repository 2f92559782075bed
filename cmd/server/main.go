package main

import (
	"flag"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"solana-mirror/internal/config"
	"solana-mirror/internal/handler"
	"solana-mirror/internal/mq"
	"solana-mirror/internal/service"
	"solana-mirror/internal/svc"
	"solana-mirror/pkg/logger"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	zerosvc "github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/rest"
)

var configFile = flag.String("f", "etc/server.yaml", "the config file")

func main() {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
		}
	}()

	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)

	logger.Init(c.Log.ToLogOption())
	defer logger.Sync()

	serviceContext, err := svc.NewServiceContext(c)
	if err != nil {
		panic(err)
	}

	sg := zerosvc.NewServiceGroup()

	server := rest.MustNewServer(c.RestConf)
	handler.RegisterHandlers(server, serviceContext)
	sg.Add(server)

	// 配置了监听地址时启动余额事件发布服务
	if len(c.Watch.Addresses) > 0 {
		producer, err := mq.NewKafkaProducer(c.Kafka)
		if err != nil {
			panic(err)
		}
		sg.Add(service.NewWatchService(c.Watch, c.Kafka, serviceContext.Rpc, producer))
	}

	logx.Infof("Starting mirror server at %s:%d", c.Host, c.Port)

	// 启动服务
	sg.Start()

	// 等待退出信号
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logx.Info("Shutting down services...")
	sg.Stop()
}
