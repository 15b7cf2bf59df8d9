package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_DefaultIsNop(t *testing.T) {
	SetLogger(nil)
	l := Logger()
	require.NotNil(t, l)
	require.False(t, l.Core().Enabled(zap.ErrorLevel))
}

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	Logger().Debug("codec resolved", zap.String("encoding", "shiftjis"))

	entries := logs.FilterMessage("codec resolved").All()
	require.Len(t, entries, 1)
	require.Equal(t, "shiftjis", entries[0].ContextMap()["encoding"])
}
