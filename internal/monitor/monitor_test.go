package monitor_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-schemaform/internal/monitor"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNew_DisabledInterval(t *testing.T) {
	t.Parallel()

	m := monitor.New(0, nil)
	assert.Nil(t, m)
	assert.NotPanics(t, func() {
		m.Run(context.Background())
		m.Wait()
	})
}

func TestRun_LogsUntilCancelled(t *testing.T) {
	t.Parallel()

	out := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(out, nil))

	m := monitor.New(time.Hour, logger)
	require.NotNil(t, m)

	ctx, cancel := context.WithCancel(context.Background())
	m.Run(ctx)
	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("msg=resource"))
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	m.Wait()
}
