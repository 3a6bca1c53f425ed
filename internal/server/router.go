// internal/server/router.go
//
// 本檔負責 HTTP 路由註冊；handler.go 定義如何處理請求，這裡定義請求如何被導向。
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
)

// Router 建立並回傳整個 HTTP 處理鏈。
// 所有端點掛在 /api/v1 之下，同時保留根路徑方便本地開發。
func (s *Server) Router() http.Handler {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), s.requestLogger())
	if s.limiter != nil {
		r.Use(limitergin.NewMiddleware(s.limiter))
	}

	s.register(r.Group("/api/v1"))
	s.register(&r.RouterGroup)
	return r
}

func (s *Server) register(g *gin.RouterGroup) {
	g.GET("/health", s.health)
	if s.gatherer != nil {
		g.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	//   - POST /accounts          → 建立帳戶
	//   - GET  /accounts          → 列出帳戶
	g.POST("/accounts", s.createAccount)
	g.GET("/accounts", s.listAccounts)

	// 單一帳戶操作，需附 X-Passcode
	acct := g.Group("/accounts/:id", s.authorize)
	acct.GET("", s.getAccount)
	acct.DELETE("", s.closeAccount)
	acct.POST("/deposit", s.deposit)
	acct.POST("/withdraw", s.withdraw)
	acct.POST("/transfer", s.transfer)
	acct.POST("/payments", s.payment)
	acct.GET("/history", s.history)
}
