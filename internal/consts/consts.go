package consts

const (
	// SOLMintStr 是原生 SOL 的哨兵资产标识（WSOL mint 地址），
	// 余额快照中原生资产统一以该地址为 key。
	SOLMintStr = "So11111111111111111111111111111111111111112"

	USDCMintStr = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

	SOLDecimals  uint8 = 9
	USDCDecimals uint8 = 6

	LamportsPerSOL = 1_000_000_000

	// InstructionLogPrefix 是交易日志中"指令已执行"标记的固定前缀，
	// 去掉前缀后即为指令名。
	InstructionLogPrefix = "Program log: Instruction: "
)
