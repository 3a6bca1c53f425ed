// Package ledger 定義帳本核心：帳戶、交易紀錄與其不變式。
// 本檔定義 Account 與 Record 結構，不含任何 HTTP 或儲存細節。

package ledger

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind 為交易紀錄的種類。
type RecordKind string

const (
	RecordDeposit     RecordKind = "deposit"
	RecordWithdrawal  RecordKind = "withdrawal"
	RecordTransferOut RecordKind = "transfer_out"
	RecordTransferIn  RecordKind = "transfer_in"
	RecordPayment     RecordKind = "payment"
)

// Record represents one applied mutation. Records are values and are never
// edited after they are appended.
type Record struct {
	ID               string          `json:"id"`
	Kind             RecordKind      `json:"kind"`
	Amount           decimal.Decimal `json:"amount"`
	BalanceAfter     decimal.Decimal `json:"balance_after"`
	CounterpartyID   string          `json:"counterparty_id,omitempty"`
	CounterpartyName string          `json:"counterparty_name,omitempty"`
	Reference        string          `json:"reference,omitempty"`
	Description      string          `json:"description"`
	Time             time.Time       `json:"time"`
}

// Account represents a named balance holder.
//
// mu 保護 balance、history 與 removed；id、seq、owner、secret 建立後不再變動，
// 可不加鎖讀取。跨帳戶操作一律依 seq 由小到大取鎖。
type Account struct {
	id       string
	seq      uint64
	owner    string
	secret   string
	openedAt time.Time

	mu      sync.Mutex
	balance decimal.Decimal
	history []Record
	removed bool
}

func (a *Account) ID() string          { return a.id }
func (a *Account) Owner() string       { return a.owner }
func (a *Account) OpenedAt() time.Time { return a.openedAt }

// Secret 回傳建立時提供的憑證。帳本本身從不檢查它，驗證由呼叫端負責。
func (a *Account) Secret() string { return a.secret }

// Summary 是帳戶在某一時間點的唯讀快照。
type Summary struct {
	ID       string          `json:"id"`
	Owner    string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	Records  int             `json:"records"`
	OpenedAt time.Time       `json:"opened_at"`
}

// Summary 在帳戶鎖內取出一致的餘額與紀錄筆數。
func (a *Account) Summary() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Summary{
		ID:       a.id,
		Owner:    a.owner,
		Balance:  a.balance,
		Records:  len(a.history),
		OpenedAt: a.openedAt,
	}
}
