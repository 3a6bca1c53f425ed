// internal/server/response.go
//
// 本檔負責統一 HTTP 回應格式：成功以 JSON 輸出，錯誤一律為 {"error": "..."}。
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"ledger/internal/credential"
	"ledger/internal/ledger"
)

const (
	// maxAmountScale 為金額允許的小數位數。
	maxAmountScale = 2
	// maxAmountExponent 為金額十進位指數上限；須在任何比較前先檢查。
	maxAmountExponent = 12
)

// maxAmount 為單筆金額與初始餘額的絕對值上限。
var maxAmount = decimal.New(1, maxAmountExponent)

// errDuplicateName 表示已有同名帳戶，HTTP 層對應 409。
var errDuplicateName = errors.New("account with this name already exists")

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type createAccountRequest struct {
	Name     string          `json:"name" binding:"required"`
	Passcode string          `json:"passcode" binding:"required,number,min=4"`
	Balance  decimal.Decimal `json:"balance"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type transferRequest struct {
	To     string          `json:"to" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

type paymentRequest struct {
	Reference string          `json:"reference" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
}

type operationResponse struct {
	Account ledger.Summary `json:"account"`
	Record  ledger.Record  `json:"record"`
}

type transferResponse struct {
	Message string         `json:"message"`
	From    ledger.Summary `json:"from"`
	To      ledger.Summary `json:"to"`
	Record  ledger.Record  `json:"record"`
}

// statusOf 將錯誤轉為 HTTP 狀態碼。
//   - InvalidAmount     → 400
//   - InsufficientFunds → 409
//   - NotFound          → 404
func statusOf(err error) int {
	switch ledger.KindOf(err) {
	case ledger.KindInvalidAmount:
		return http.StatusBadRequest
	case ledger.KindInsufficientFunds:
		return http.StatusConflict
	case ledger.KindNotFound:
		return http.StatusNotFound
	}
	switch {
	case errors.Is(err, errDuplicateName):
		return http.StatusConflict
	case errors.Is(err, credential.ErrInvalidPasscode):
		return http.StatusBadRequest
	case errors.Is(err, credential.ErrMismatch):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// checkAmount 在進入帳本前拒絕超出範圍或小數位過多的金額。
// 正負號交由帳本判斷，因此 -50 仍會得到帳本的 InvalidAmount。
func checkAmount(op string, amount decimal.Decimal) error {
	exp := amount.Exponent()
	if exp < -maxAmountScale {
		return &ledger.Error{Op: op, Kind: ledger.KindInvalidAmount, Msg: "amount has too many decimal places"}
	}
	if exp > maxAmountExponent || amount.Abs().GreaterThan(maxAmount) {
		return &ledger.Error{Op: op, Kind: ledger.KindInvalidAmount, Msg: "amount out of range"}
	}
	return nil
}

func writeErr(c *gin.Context, err error) {
	resp := errorResponse{Error: err.Error()}
	if k := ledger.KindOf(err); k != ledger.KindUnknown {
		resp.Kind = k.String()
	}
	c.JSON(statusOf(err), resp)
}

func writeBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
}
