package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector("ledger")
	reg := prometheus.NewRegistry()
	require.NoError(t, c.Register(reg))

	c.RecordOperation("deposit", "ok", time.Millisecond)
	c.RecordOperation("deposit", "ok", time.Millisecond)
	c.RecordOperation("withdraw", "insufficient_funds", time.Millisecond)
	c.RecordAccounts(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.operations.WithLabelValues("deposit", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("withdraw", "insufficient_funds")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.accounts))
	assert.Equal(t, 2, testutil.CollectAndCount(c.latency))

	// 重複註冊應失敗
	assert.Error(t, c.Register(reg))
}
