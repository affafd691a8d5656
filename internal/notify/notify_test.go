package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type captureSink struct {
	toasts []Toast
}

func (c *captureSink) Notify(_ context.Context, t Toast) { c.toasts = append(c.toasts, t) }

func TestSession_Levels(t *testing.T) {
	capture := &captureSink{}
	n := ForSession(capture, "s-1")
	ctx := context.Background()

	n.Info(ctx, "submitting")
	n.Success(ctx, "done")
	n.Failure(ctx, "oops")

	assert.Equal(t, []Toast{
		{SessionID: "s-1", Level: LevelInfo, Message: "submitting"},
		{SessionID: "s-1", Level: LevelSuccess, Message: "done"},
		{SessionID: "s-1", Level: LevelError, Message: "oops"},
	}, capture.toasts)
}

func TestMulti_FansOut(t *testing.T) {
	a, b := &captureSink{}, &captureSink{}
	Multi{a, b}.Notify(context.Background(), Toast{Level: LevelInfo, Message: "hi"})

	assert.Len(t, a.toasts, 1)
	assert.Len(t, b.toasts, 1)
}

func TestLogSink(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	NewLogSink(zap.New(core)).Notify(context.Background(), Toast{SessionID: "s-2", Level: LevelError, Message: "failed"})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "failed", entries[0].ContextMap()["message"])
		assert.Equal(t, "error", entries[0].ContextMap()["level"])
	}
}
