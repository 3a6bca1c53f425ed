package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ledger/internal/ledger"
)

// PasscodeHeader 攜帶帳戶密碼的請求標頭。
const PasscodeHeader = "X-Passcode"

const (
	loggerKey  = "logger"
	accountKey = "account"
)

// requestLogger 為每個請求產生 request id，並把帶有該 id 的 logger 放進 gin context。
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		log := s.log.With(
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.Header("X-Request-ID", requestID)
		c.Set(loggerKey, log)

		c.Next()

		log.Info("request completed",
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func loggerFrom(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if log, ok := v.(*zap.Logger); ok {
			return log
		}
	}
	return zap.NewNop()
}

// authorize 解析 :id 並驗證 X-Passcode；通過後把帳戶放進 context。
func (s *Server) authorize(c *gin.Context) {
	a, err := s.Ledger.FindAccount(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		c.Abort()
		return
	}
	if err := s.hasher.Verify(a.Secret(), c.GetHeader(PasscodeHeader)); err != nil {
		loggerFrom(c).Warn("passcode rejected", zap.String("account_id", a.ID()))
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	c.Set(accountKey, a)
	c.Next()
}

func accountFrom(c *gin.Context) *ledger.Account {
	return c.MustGet(accountKey).(*ledger.Account)
}
