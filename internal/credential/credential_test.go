package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		passcode string
		wantErr  bool
	}{
		{"1234", false},
		{"00001111", false},
		{"123", true},
		{"", true},
		{"12a4", true},
		{"-1234", true},
	}
	for _, tt := range tests {
		t.Run(tt.passcode, func(t *testing.T) {
			err := Validate(tt.passcode)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPasscode)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("1234")
	require.NoError(t, err)
	assert.NotEqual(t, "1234", hash)

	assert.NoError(t, h.Verify(hash, "1234"))
	assert.ErrorIs(t, h.Verify(hash, "4321"), ErrMismatch)
	assert.ErrorIs(t, h.Verify(hash, ""), ErrMismatch)
	assert.ErrorIs(t, h.Verify("not-a-hash", "1234"), ErrMismatch)

	_, err = h.Hash("12")
	assert.ErrorIs(t, err, ErrInvalidPasscode)
}

func TestNewHasherCostBounds(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(99).cost)
	assert.Equal(t, bcrypt.MinCost, NewHasher(bcrypt.MinCost).cost)
}
