// internal/ledger/errors.go
//
// 本檔集中定義帳本核心的領域錯誤。
// 所有失敗皆以 *Error 回傳並帶有 Kind；上層（HTTP handler）依 Kind 轉換狀態碼，
// 或以 errors.Is 比對下方的哨兵錯誤。

package ledger

import "errors"

// Kind 為錯誤分類，核心只會產生以下三種。
type Kind int

const (
	// KindUnknown 表示非帳本核心產生的錯誤。
	KindUnknown Kind = iota
	// KindInvalidAmount：金額 <= 0、初始餘額為負，或轉帳對象為自己。
	KindInvalidAmount
	// KindInsufficientFunds：金額超過目前餘額。
	KindInsufficientFunds
	// KindNotFound：帳戶不存在或已關閉。
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidAmount:
		return "invalid_amount"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidAmount 對應 HTTP 400。
	ErrInvalidAmount = &Error{Kind: KindInvalidAmount, Msg: "amount must be positive"}

	// ErrInsufficientFunds 對應 HTTP 409。
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds, Msg: "not enough balance"}

	// ErrNotFound 對應 HTTP 404。
	ErrNotFound = &Error{Kind: KindNotFound, Msg: "account not found"}
)

// Error 是帳本操作的失敗結果。
// Op 為操作名稱（例如 "transfer"），Msg 為人類可讀的原因。
type Error struct {
	Op   string
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Msg
	}
	return e.Op + ": " + e.Msg
}

// Is 讓 errors.Is(err, ErrInvalidAmount) 只比對 Kind，不比對 Op 與 Msg。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf 取出錯誤鏈中的 Kind；非帳本錯誤回傳 KindUnknown。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func fail(op string, kind Kind, msg string) error {
	return &Error{Op: op, Kind: kind, Msg: msg}
}
