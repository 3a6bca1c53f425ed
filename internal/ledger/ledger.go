// internal/ledger/ledger.go

// Package ledger 定義帳本核心：帳戶建立、存款、提款、轉帳、第三方付款與交易紀錄。
// 每個帳戶各自持有互斥鎖，跨帳戶的轉帳依帳戶序號排序取鎖以避免死結。
// 金額使用 decimal.Decimal，避免浮點誤差。
// 核心不寫日誌、不重試；所有失敗以 *Error 立即回傳。
package ledger

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DefaultCurrency 為交易描述中的金額前綴。
	DefaultCurrency = "Nu."
	// DefaultFirstID 為第一個帳戶的編號；之後單調遞增、永不重用。
	DefaultFirstID = 10001
)

// Option 調整 Ledger 的建構參數。
type Option func(*Ledger)

// WithCurrency 設定交易描述使用的幣別前綴。
func WithCurrency(symbol string) Option {
	return func(l *Ledger) { l.currency = symbol }
}

// WithClock 注入時間來源（測試用）。
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithFirstID 設定第一個帳戶編號（最小為 1）。
func WithFirstID(first uint64) Option {
	return func(l *Ledger) { l.firstID = max(first, 1) }
}

// Ledger 為聚合根：管理所有帳戶。
// - mu：只保護 accts 索引表本身；帳戶狀態由各帳戶自己的鎖保護。
// - lastSeq：以原子遞增產生帳戶序號，刪除後也不回收。
type Ledger struct {
	mu      sync.RWMutex
	accts   map[string]*Account
	lastSeq atomic.Uint64

	firstID  uint64
	currency string
	now      func() time.Time
	recordID func() string
}

// New 建立空白帳本（僅 in-memory 狀態，無外部依賴）。
func New(opts ...Option) *Ledger {
	l := &Ledger{
		accts:    make(map[string]*Account),
		firstID:  DefaultFirstID,
		currency: DefaultCurrency,
		now:      time.Now,
		recordID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSeq.Store(l.firstID - 1)
	return l
}

// CreateAccount 以名稱、憑證與初始餘額建立帳戶；初始餘額不得為負（可為 0）。
func (l *Ledger) CreateAccount(owner, secret string, initial decimal.Decimal) (*Account, error) {
	if initial.IsNegative() {
		return nil, fail("create", KindInvalidAmount, "initial balance cannot be negative")
	}
	seq := l.lastSeq.Add(1)
	a := &Account{
		id:       strconv.FormatUint(seq, 10),
		seq:      seq,
		owner:    owner,
		secret:   secret,
		openedAt: l.now(),
		balance:  initial,
	}

	l.mu.Lock()
	l.accts[a.id] = a
	l.mu.Unlock()
	return a, nil
}

// FindAccount 依編號取得帳戶；不存在回傳 ErrNotFound。
func (l *Ledger) FindAccount(id string) (*Account, error) {
	l.mu.RLock()
	a, ok := l.accts[id]
	l.mu.RUnlock()
	if !ok {
		return nil, fail("find", KindNotFound, "account not found")
	}
	return a, nil
}

// RemoveAccount 刪除帳戶與其全部紀錄。
// 之後持有舊指標的呼叫都會得到 ErrNotFound，不會再改動任何狀態。
func (l *Ledger) RemoveAccount(id string) error {
	l.mu.Lock()
	a, ok := l.accts[id]
	if ok {
		delete(l.accts, id)
	}
	l.mu.Unlock()
	if !ok {
		return fail("remove", KindNotFound, "account not found")
	}

	a.mu.Lock()
	a.removed = true
	a.history = nil
	a.mu.Unlock()
	return nil
}

// Deposit 存款：金額需 > 0。
func (l *Ledger) Deposit(a *Account, amount decimal.Decimal) (Record, error) {
	const op = "deposit"
	if !amount.IsPositive() {
		return Record{}, fail(op, KindInvalidAmount, "amount must be positive")
	}
	if a == nil {
		return Record{}, fail(op, KindNotFound, "account not found")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.removed {
		return Record{}, fail(op, KindNotFound, "account not found")
	}
	a.balance = a.balance.Add(amount)
	rec := l.newRecord(RecordDeposit, amount, a.balance)
	rec.Description = fmt.Sprintf("Deposited %s", l.money(amount))
	a.history = append(a.history, rec)
	return rec, nil
}

// Withdraw 提款：金額需 > 0 且不得超過餘額。
func (l *Ledger) Withdraw(a *Account, amount decimal.Decimal) (Record, error) {
	return l.debit("withdraw", a, amount, func(rec *Record) {
		rec.Kind = RecordWithdrawal
		rec.Description = fmt.Sprintf("Withdrew %s", l.money(amount))
	})
}

// ThirdPartyPayment 付款給帳本外的對象（例如手機儲值號碼）。
// 只扣款，不會入帳到任何帳本內的帳戶。
func (l *Ledger) ThirdPartyPayment(a *Account, amount decimal.Decimal, reference string) (Record, error) {
	return l.debit("payment", a, amount, func(rec *Record) {
		rec.Kind = RecordPayment
		rec.Reference = reference
		rec.Description = fmt.Sprintf("Third-party payment %s to %s", l.money(amount), reference)
	})
}

// debit 為提款與付款共用的單邊扣款流程：金額 → 帳戶存在 → 餘額。
func (l *Ledger) debit(op string, a *Account, amount decimal.Decimal, fill func(*Record)) (Record, error) {
	if !amount.IsPositive() {
		return Record{}, fail(op, KindInvalidAmount, "amount must be positive")
	}
	if a == nil {
		return Record{}, fail(op, KindNotFound, "account not found")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.removed {
		return Record{}, fail(op, KindNotFound, "account not found")
	}
	if amount.GreaterThan(a.balance) {
		return Record{}, fail(op, KindInsufficientFunds, "not enough balance")
	}
	a.balance = a.balance.Sub(amount)
	rec := l.newRecord("", amount, a.balance)
	fill(&rec)
	a.history = append(a.history, rec)
	return rec, nil
}

// Transfer 轉帳在兩個帳戶鎖都持有的情況下完成：
// 檢核金額 → 檢核對象 → 檢查餘額 → 扣款與入帳 → 雙邊紀錄。
// 任一步驟失敗皆不會改變任何帳戶狀態。
func (l *Ledger) Transfer(src *Account, amount decimal.Decimal, dst *Account) (sent, received Record, err error) {
	const op = "transfer"
	if !amount.IsPositive() {
		return sent, received, fail(op, KindInvalidAmount, "amount must be positive")
	}
	if src == nil || dst == nil {
		return sent, received, fail(op, KindNotFound, "account not found")
	}
	if src == dst {
		return sent, received, fail(op, KindInvalidAmount, "cannot transfer to same account")
	}

	unlock := lockInOrder(src, dst)
	defer unlock()

	if src.removed || dst.removed {
		return sent, received, fail(op, KindNotFound, "account not found")
	}
	if amount.GreaterThan(src.balance) {
		return sent, received, fail(op, KindInsufficientFunds, "not enough balance")
	}

	src.balance = src.balance.Sub(amount)
	dst.balance = dst.balance.Add(amount)

	sent = l.newRecord(RecordTransferOut, amount, src.balance)
	sent.CounterpartyID, sent.CounterpartyName = dst.id, dst.owner
	sent.Description = fmt.Sprintf("Sent %s to %s (%s)", l.money(amount), dst.owner, dst.id)

	received = l.newRecord(RecordTransferIn, amount, dst.balance)
	received.Time = sent.Time
	received.CounterpartyID, received.CounterpartyName = src.id, src.owner
	received.Description = fmt.Sprintf("Received %s from %s (%s)", l.money(amount), src.owner, src.id)

	src.history = append(src.history, sent)
	dst.history = append(dst.history, received)
	return sent, received, nil
}

// History 回傳帳戶交易紀錄的拷貝，順序即寫入順序。
func (l *Ledger) History(a *Account) []Record {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Record, len(a.history))
	copy(out, a.history)
	return out
}

// Balance 回傳帳戶目前餘額。
func (l *Ledger) Balance(a *Account) decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Len 回傳目前帳戶數。
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.accts)
}

// Accounts 回傳所有帳戶的快照，依編號遞增排序。
func (l *Ledger) Accounts() []Summary {
	accts := l.sorted()
	out := make([]Summary, 0, len(accts))
	for _, a := range accts {
		out = append(out, a.Summary())
	}
	return out
}

// TotalBalance 依序鎖住所有帳戶後加總餘額，因此不會看到只做一半的轉帳。
func (l *Ledger) TotalBalance() decimal.Decimal {
	accts := l.sorted()
	for _, a := range accts {
		a.mu.Lock()
	}
	total := decimal.Zero
	for _, a := range accts {
		if !a.removed {
			total = total.Add(a.balance)
		}
	}
	for i := len(accts) - 1; i >= 0; i-- {
		accts[i].mu.Unlock()
	}
	return total
}

func (l *Ledger) sorted() []*Account {
	l.mu.RLock()
	accts := make([]*Account, 0, len(l.accts))
	for _, a := range l.accts {
		accts = append(accts, a)
	}
	l.mu.RUnlock()
	slices.SortFunc(accts, func(x, y *Account) int { return cmp.Compare(x.seq, y.seq) })
	return accts
}

func (l *Ledger) newRecord(kind RecordKind, amount, balanceAfter decimal.Decimal) Record {
	return Record{
		ID:           l.recordID(),
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Time:         l.now(),
	}
}

func (l *Ledger) money(amount decimal.Decimal) string {
	return l.currency + amount.String()
}

// lockInOrder 依序號由小到大取得兩個帳戶鎖，回傳對應的解鎖函式。
func lockInOrder(a, b *Account) func() {
	first, second := a, b
	if b.seq < a.seq {
		first, second = b, a
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
