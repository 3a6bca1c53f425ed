// cmd/server/main.go

// 本服務以 HTTP 提供帳本核心的操作：開戶、存提款、轉帳、第三方付款與交易紀錄。
// 此檔案負責讀取設定、初始化模組（ledger, server, metrics），
// 並啟動 HTTP 伺服器；收到 SIGINT/SIGTERM 時優雅關閉。帳本僅存在記憶體中。

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ledger/internal/config"
	"ledger/internal/credential"
	"ledger/internal/ledger"
	"ledger/internal/logging"
	metricsprom "ledger/internal/metrics/prometheus"
	"ledger/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger 尚未建立，只能寫 stderr
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logging.New(logging.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: !cfg.IsProduction,
	})
	if err != nil {
		os.Stderr.WriteString("init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metricsprom.NewCollector("ledger")
	if err := collector.Register(registry); err != nil {
		return err
	}

	l := ledger.New(ledger.WithCurrency(cfg.CurrencySymbol))
	s := server.NewServer(l,
		server.WithLogger(log.Named("http")),
		server.WithHasher(credential.NewHasher(cfg.BcryptCost)),
		server.WithMetrics(collector, registry),
		server.WithRateLimit(cfg.RateLimit),
	)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: s.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("ledger server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
