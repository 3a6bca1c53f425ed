// internal/credential/credential.go
//
// 帳戶密碼（passcode）的格式檢查與雜湊。
// 帳本核心只保存呼叫端給的字串，從不驗證；HTTP 層在建立帳戶時存入 bcrypt 雜湊，
// 每次帳戶操作前再以 Verify 比對。

package credential

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// PasscodeRule 為密碼格式：必填、純數字、至少 4 碼。
const PasscodeRule = "required,number,min=4"

// ErrInvalidPasscode 代表密碼格式不符。
var ErrInvalidPasscode = errors.New("invalid passcode: must be at least 4 digits")

// ErrMismatch 代表密碼與雜湊不符。
var ErrMismatch = errors.New("incorrect passcode")

var validate = validator.New()

// Hasher 以固定成本產生與比對 bcrypt 雜湊。
type Hasher struct {
	cost int
}

// NewHasher 建立 Hasher；cost 超出 bcrypt 範圍時改用 bcrypt.DefaultCost。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Validate 檢查密碼格式。
func Validate(passcode string) error {
	if err := validate.Var(passcode, PasscodeRule); err != nil {
		return ErrInvalidPasscode
	}
	return nil
}

// Hash 先檢查格式再產生雜湊。
func (h *Hasher) Hash(passcode string) (string, error) {
	if err := Validate(passcode); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash passcode: %w", err)
	}
	return string(hash), nil
}

// Verify 比對密碼與雜湊；不符時回傳 ErrMismatch。
func (h *Hasher) Verify(hash, passcode string) error {
	if passcode == "" {
		return ErrMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)); err != nil {
		return ErrMismatch
	}
	return nil
}
