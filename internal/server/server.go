// internal/server/server.go
//
// Package server 提供 HTTP 介面，作為帳本核心的呼叫端。
// 每個 handler 僅負責：
//  1. 解析與驗證請求（gin binding）
//  2. 解析帳戶編號、驗證密碼
//  3. 呼叫 ledger 執行操作
//  4. 依錯誤分類回傳狀態碼，並記錄日誌與指標
//
// 帳本邏輯全部在 ledger 套件；本層不直接改動任何餘額。
package server

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"

	"ledger/internal/credential"
	"ledger/internal/ledger"
	"ledger/internal/metrics"
)

// Server 為 HTTP 層核心結構。
// - Ledger：注入的帳本核心。
// - hasher：建立帳戶時雜湊密碼、操作前驗證密碼。
// - metrics / gatherer：操作指標與 /metrics 匯出來源（gatherer 為 nil 時不掛 /metrics）。
// - limiter：為 nil 時不限流。
// - openMu：開戶時串行化同名檢查與建立。
type Server struct {
	Ledger *ledger.Ledger

	hasher   *credential.Hasher
	log      *zap.Logger
	metrics  metrics.Recorder
	gatherer prometheus.Gatherer
	limiter  *limiter.Limiter
	openMu   sync.Mutex
}

// Option 調整 Server 的可選依賴。
type Option func(*Server)

// WithLogger 設定日誌；預設不輸出。
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithHasher 設定密碼雜湊器。
func WithHasher(h *credential.Hasher) Option {
	return func(s *Server) { s.hasher = h }
}

// WithMetrics 設定指標收集器；gatherer 非 nil 時同時提供 GET /metrics。
func WithMetrics(rec metrics.Recorder, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = rec
		s.gatherer = gatherer
	}
}

// WithRateLimit 以記憶體儲存啟用以來源 IP 為單位的限流。
func WithRateLimit(rate limiter.Rate) Option {
	return func(s *Server) {
		if rate.Limit <= 0 {
			return
		}
		s.limiter = limiter.New(memory.NewStore(), rate)
	}
}

// NewServer 建立新的 HTTP 伺服器。
func NewServer(l *ledger.Ledger, opts ...Option) *Server {
	s := &Server{
		Ledger:  l,
		hasher:  credential.NewHasher(0),
		log:     zap.NewNop(),
		metrics: metrics.NoOp{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
