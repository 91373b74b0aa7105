package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &Logger{zap.New(core)}

	log.Debug("fetched",
		StringField("strategy_id", "s-1"),
		StringsField("failed", []string{"a", "b"}),
		IntField("inputs", 3),
		Float64Field("total_pnl", 12.5),
		DurationField("elapsed", 150*time.Millisecond),
		ErrorField(errors.New("boom")))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "s-1", fields["strategy_id"])
	assert.Equal(t, []interface{}{"a", "b"}, fields["failed"])
	assert.EqualValues(t, 3, fields["inputs"])
	assert.Equal(t, 12.5, fields["total_pnl"])
	assert.Equal(t, 150*time.Millisecond, fields["elapsed"])
	assert.Equal(t, "boom", fields["error"])
}

func TestFromContext(t *testing.T) {
	base := NewNop()
	assert.Same(t, base, base.FromContext(context.Background()))

	scoped := base.With(StringField("request_id", "r-1"))
	ctx := NewContext(context.Background(), scoped)
	assert.Same(t, scoped, base.FromContext(ctx))
}
