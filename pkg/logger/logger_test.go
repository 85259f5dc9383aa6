package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func providerExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return slog.String("provider", v), true
	}
	return slog.Attr{}, false
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestLogHandlerDecorator(t *testing.T) {
	t.Parallel()

	t.Run("adds extracted attributes", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := slog.New(NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), providerExtractor))

		ctx := context.WithValue(context.Background(), ctxKey{}, "aircall")
		log.InfoContext(ctx, "login started")

		rec := decode(t, &buf)
		require.Equal(t, "login started", rec["msg"])
		require.Equal(t, "aircall", rec["provider"])
	})

	t.Run("skips missing values", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := slog.New(NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), providerExtractor))

		log.InfoContext(context.Background(), "no provider")

		rec := decode(t, &buf)
		require.NotContains(t, rec, "provider")
	})

	t.Run("nil extractors are dropped", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := slog.New(NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), nil, providerExtractor, nil))

		ctx := context.WithValue(context.Background(), ctxKey{}, "aircall")
		require.NotPanics(t, func() { log.InfoContext(ctx, "ok") })
		require.Equal(t, "aircall", decode(t, &buf)["provider"])
	})

	t.Run("keeps extractors across WithAttrs and WithGroup", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := slog.New(NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), providerExtractor)).
			With(slog.String("component", "oauth")).
			WithGroup("req")

		ctx := context.WithValue(context.Background(), ctxKey{}, "aircall")
		log.InfoContext(ctx, "grouped")

		rec := decode(t, &buf)
		require.Equal(t, "oauth", rec["component"])
		group, ok := rec["req"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "aircall", group["provider"])
	})
}

func TestFanoutHandler(t *testing.T) {
	t.Parallel()

	var info, errs bytes.Buffer
	h := fanoutHandler{
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	}
	log := slog.New(h)

	log.Info("only info")
	require.NotEmpty(t, info.String())
	require.Empty(t, errs.String())

	info.Reset()
	log.Error("both")
	require.Contains(t, info.String(), "both")
	require.Contains(t, errs.String(), "both")

	require.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestSentryLogLevels(t *testing.T) {
	t.Parallel()

	require.Equal(t, []slog.Level{slog.LevelWarn, slog.LevelError}, sentryLogLevels(slog.LevelWarn))
	require.Equal(t, []slog.Level{slog.LevelError}, sentryLogLevels(slog.LevelError))
	require.Equal(t, []slog.Level{slog.LevelInfo, slog.LevelWarn, slog.LevelError}, sentryLogLevels(slog.LevelDebug))
	require.Equal(t, []slog.Level{slog.LevelError}, sentryLogLevels(slog.Level(12)))
}

func TestNewWithSentry_NoDSNFallsBack(t *testing.T) {
	t.Parallel()

	log := NewWithSentry(Config{Level: slog.LevelInfo}, SentryConfig{})
	require.NotNil(t, log)
	_, isDecorator := log.Handler().(*LogHandlerDecorator)
	require.True(t, isDecorator)
}

func TestNewNope(t *testing.T) {
	t.Parallel()
	log := NewNope()
	require.NotNil(t, log)
	require.NotPanics(t, func() { log.Error("discarded") })
}
