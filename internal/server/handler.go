// internal/server/handler.go
package server

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ledger/internal/ledger"
	"ledger/internal/metrics"
)

// observe 記錄一次帳本操作的指標，失敗時另寫一筆 warn 日誌。
func (s *Server) observe(c *gin.Context, op string, start time.Time, err error) {
	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = ledger.KindOf(err).String()
		loggerFrom(c).Warn("ledger operation rejected",
			zap.String("operation", op),
			zap.String("kind", outcome),
			zap.Error(err),
		)
	}
	s.metrics.RecordOperation(op, outcome, time.Since(start))
}

// createAccount 處理 POST /accounts：{name, passcode, balance} → 201。
func (s *Server) createAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}
	if err := checkAmount("create", req.Balance); err != nil {
		writeErr(c, err)
		return
	}
	hash, err := s.hasher.Hash(req.Passcode)
	if err != nil {
		writeErr(c, err)
		return
	}

	// 名稱檢查與建立在同一臨界區內。
	s.openMu.Lock()
	if s.ownerTaken(req.Name) {
		s.openMu.Unlock()
		writeErr(c, errDuplicateName)
		return
	}
	start := time.Now()
	a, err := s.Ledger.CreateAccount(req.Name, hash, req.Balance)
	s.openMu.Unlock()
	s.observe(c, "create", start, err)
	if err != nil {
		writeErr(c, err)
		return
	}
	s.metrics.RecordAccounts(s.Ledger.Len())
	loggerFrom(c).Info("account opened", zap.String("account_id", a.ID()))
	c.JSON(http.StatusCreated, a.Summary())
}

func (s *Server) ownerTaken(name string) bool {
	return slices.ContainsFunc(s.Ledger.Accounts(), func(sum ledger.Summary) bool {
		return sum.Owner == name
	})
}

// listAccounts 處理 GET /accounts。
func (s *Server) listAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, s.Ledger.Accounts())
}

// getAccount 處理 GET /accounts/:id。
func (s *Server) getAccount(c *gin.Context) {
	c.JSON(http.StatusOK, accountFrom(c).Summary())
}

// closeAccount 處理 DELETE /accounts/:id → 204。
func (s *Server) closeAccount(c *gin.Context) {
	a := accountFrom(c)
	start := time.Now()
	err := s.Ledger.RemoveAccount(a.ID())
	s.observe(c, "remove", start, err)
	if err != nil {
		writeErr(c, err)
		return
	}
	s.metrics.RecordAccounts(s.Ledger.Len())
	loggerFrom(c).Info("account closed", zap.String("account_id", a.ID()))
	c.Status(http.StatusNoContent)
}

// deposit 處理 POST /accounts/:id/deposit。
func (s *Server) deposit(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}
	if err := checkAmount("deposit", req.Amount); err != nil {
		writeErr(c, err)
		return
	}
	a := accountFrom(c)
	start := time.Now()
	rec, err := s.Ledger.Deposit(a, req.Amount)
	s.observe(c, "deposit", start, err)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, operationResponse{Account: a.Summary(), Record: rec})
}

// withdraw 處理 POST /accounts/:id/withdraw。
func (s *Server) withdraw(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}
	if err := checkAmount("withdraw", req.Amount); err != nil {
		writeErr(c, err)
		return
	}
	a := accountFrom(c)
	start := time.Now()
	rec, err := s.Ledger.Withdraw(a, req.Amount)
	s.observe(c, "withdraw", start, err)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, operationResponse{Account: a.Summary(), Record: rec})
}

// transfer 處理 POST /accounts/:id/transfer：{to, amount}。
// 收款帳戶不存在時在呼叫帳本前就回 404。
func (s *Server) transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}
	if err := checkAmount("transfer", req.Amount); err != nil {
		writeErr(c, err)
		return
	}
	from := accountFrom(c)
	to, err := s.Ledger.FindAccount(req.To)
	if err != nil {
		writeErr(c, err)
		return
	}

	start := time.Now()
	sent, _, err := s.Ledger.Transfer(from, req.Amount, to)
	s.observe(c, "transfer", start, err)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, transferResponse{
		Message: "transfer success",
		From:    from.Summary(),
		To:      to.Summary(),
		Record:  sent,
	})
}

// payment 處理 POST /accounts/:id/payments：{amount, reference}。
func (s *Server) payment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}
	if err := checkAmount("payment", req.Amount); err != nil {
		writeErr(c, err)
		return
	}
	a := accountFrom(c)
	start := time.Now()
	rec, err := s.Ledger.ThirdPartyPayment(a, req.Amount, req.Reference)
	s.observe(c, "payment", start, err)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, operationResponse{Account: a.Summary(), Record: rec})
}

// history 處理 GET /accounts/:id/history。
func (s *Server) history(c *gin.Context) {
	c.JSON(http.StatusOK, s.Ledger.History(accountFrom(c)))
}

// health 提供健康檢查端點：GET /health。
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "accounts": s.Ledger.Len()})
}
