package service

import (
	"context"
	"runtime/debug"
	"time"

	"solana-mirror/internal/config"
	"solana-mirror/internal/logic/parser"
	"solana-mirror/internal/mq"
	"solana-mirror/internal/rpcclient"
	"solana-mirror/internal/types"
	"solana-mirror/internal/utils"
	"solana-mirror/pkg/logger"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// WatchService 定期轮询被监听地址的增量交易，
// 将每笔交易的余额变更以 JSON 事件发布到 Kafka（按 owner 哈希分区）。
// 单个地址同步失败只记日志，不影响其它地址与下一轮调度。
type WatchService struct {
	rpc      *rpcclient.Client
	producer *kafka.Producer
	cfg      config.WatchConfig
	kafkaCfg config.KafkaConfig

	interval time.Duration
	stopChan chan struct{}
	lastSig  map[string]string // 地址 → 上一轮已处理的最新签名
}

func NewWatchService(
	cfg config.WatchConfig,
	kafkaCfg config.KafkaConfig,
	rpc *rpcclient.Client,
	producer *kafka.Producer,
) *WatchService {
	if cfg.IntervalSec <= 0 {
		cfg.IntervalSec = 30
	}
	return &WatchService{
		rpc:      rpc,
		producer: producer,
		cfg:      cfg,
		kafkaCfg: kafkaCfg,
		interval: time.Duration(cfg.IntervalSec) * time.Second,
		stopChan: make(chan struct{}),
		lastSig:  make(map[string]string, len(cfg.Addresses)),
	}
}

func (s *WatchService) Start() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.syncAll()
		case <-s.stopChan:
			return
		}
	}
}

func (s *WatchService) Stop() {
	close(s.stopChan)
	if s.producer != nil {
		s.producer.Flush(3000)
		s.producer.Close()
	}
}

func (s *WatchService) syncAll() {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[WatchService] sync panic: %v\n%s", r, debug.Stack())
		}
	}()

	for _, address := range s.cfg.Addresses {
		if err := s.syncAddress(address); err != nil {
			logger.Warnf("[WatchService] 同步失败: address=%s err=%v", address, err)
		}
	}
}

// syncAddress 处理单个地址：取上次水位之后的新签名，逐批拉取、归一化并发布事件。
func (s *WatchService) syncAddress(address string) error {
	subject, err := types.TryPubkeyFromBase58(address)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	signatures, err := s.rpc.Signatures(ctx, address, rpcclient.SignatureOpts{
		Until: s.lastSig[address],
		Limit: s.cfg.SignatureBatch,
	})
	if err != nil {
		return err
	}
	if len(signatures) == 0 {
		return nil
	}

	// 源端顺序从新到旧；逆序处理保证事件按时间先后发布
	jobs := make([]*mq.KafkaJob, 0, len(signatures))
	for i := len(signatures) - 1; i >= 0; i-- {
		txJobs, err := s.buildJobs(ctx, signatures[i], subject)
		if err != nil {
			logger.Warnf("[WatchService] 构建事件失败: sig=%s err=%v", signatures[i], err)
			continue // 丢弃该笔的贡献，继续其它签名
		}
		jobs = append(jobs, txJobs...)
	}

	if len(jobs) > 0 {
		timeout := time.Duration(s.cfg.SendTimeoutMs) * time.Millisecond
		ok, failed := mq.SendKafkaJobs(ctx, s.producer, jobs, timeout)
		if len(failed) > 0 {
			logger.Warnf("[WatchService] 事件发送部分失败: address=%s ok=%d failed=%d", address, len(ok), len(failed))
		} else {
			logger.Infof("[WatchService] 发布余额事件: address=%s count=%d", address, len(ok))
		}
	}

	// 最新签名作为下一轮水位
	s.lastSig[address] = signatures[0]
	return nil
}

// buildJobs 拉取单笔交易并把主体的每个资产变更编码为一条 Kafka 消息。
func (s *WatchService) buildJobs(ctx context.Context, signature string, subject types.Pubkey) ([]*mq.KafkaJob, error) {
	raw, err := s.rpc.Transaction(ctx, signature)
	if err != nil {
		return nil, err
	}
	if raw == nil || raw.Failed() {
		return nil, nil
	}

	tx, err := parser.ParseTransaction(raw, subject)
	if err != nil {
		return nil, err
	}

	partitions := uint32(s.kafkaCfg.Partitions)
	jobs := make([]*mq.KafkaJob, 0, len(tx.Balances))
	for mint, change := range tx.Balances {
		event := &mq.BalanceUpdateEvent{
			Owner:      subject.String(),
			Mint:       mint,
			PreAmount:  change.Pre.Raw,
			PostAmount: change.Post.Raw,
			PreUi:      change.Pre.Formatted,
			PostUi:     change.Post.Formatted,
			BlockTime:  tx.BlockTime,
			Signature:  signature,
		}
		value, err := event.Encode()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, &mq.KafkaJob{
			Topic:     s.kafkaCfg.Topic,
			Partition: int32(utils.PartitionHashBytes(subject[:], partitions)),
			Value:     value,
		})
	}
	return jobs, nil
}
