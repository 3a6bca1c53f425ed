package metrics

import "time"

// Outcome labels shared by all recorders.
const (
	OutcomeOK = "ok"
)

// Recorder 收集帳本操作的結果與延遲。
// 實作可匯出至不同後端（Prometheus 等）。
type Recorder interface {
	// RecordOperation 記錄一次帳本操作；outcome 為 OutcomeOK 或錯誤分類名稱。
	RecordOperation(op, outcome string, duration time.Duration)
	// RecordAccounts 記錄目前帳戶數。
	RecordAccounts(n int)
}

// NoOp is the default Recorder when metrics are not needed.
type NoOp struct{}

func (NoOp) RecordOperation(op, outcome string, duration time.Duration) {}
func (NoOp) RecordAccounts(n int)                                        {}
