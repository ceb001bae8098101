package trace

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFromContext(t *testing.T) {
	in := New(WithLogger(zap.NewNop()))

	ctx := WithInstrumentor(context.Background(), in)
	assert.Same(t, in, FromContext(ctx))
	assert.Nil(t, FromContext(context.Background()))

	// A nil context is tolerated on both sides.
	//nolint:staticcheck
	assert.Nil(t, FromContext(nil))
	//nolint:staticcheck
	assert.Same(t, in, FromContext(WithInstrumentor(nil, in)))
}

func parseConfig(ctx context.Context) {
	defer FunctionFrom(ctx).Stop()
	defer ScopeFrom(ctx, "tokenize").Stop()
}

func TestScopeFromContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	in := New(WithLogger(zap.NewNop()))
	in.BeginSession("ctx", path)

	parseConfig(WithInstrumentor(context.Background(), in))
	in.EndSession()

	events := readTrace(t, path)
	require.Len(t, events, 2)
	assert.Equal(t, "tokenize", events[0].Name)
	assert.True(t, strings.HasSuffix(events[1].Name, "trace.parseConfig"), events[1].Name)
}

func TestScopeFromEmptyContext(t *testing.T) {
	assert.NotPanics(t, func() {
		parseConfig(context.Background())
	})
}
