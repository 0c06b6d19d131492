package observability

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	tr := NoopTranslationHooks{}
	tr.OnTranslateStart(ctx, "RedPlastic", 4)
	tr.OnTranslateComplete(ctx, "RedPlastic", 0, time.Second, nil)
	tr.OnValidate(ctx, "RedPlastic", 0, 1)
	tr.OnWriteComplete(ctx, "RedPlastic", 2048, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "translate")
	c.OnCacheMiss(ctx, "translate")
	c.OnCacheSet(ctx, "translate", 1024)

	a := NoopAPIHooks{}
	a.OnRequest(ctx, "POST", "/api/v1/translate")
	a.OnResponse(ctx, "POST", "/api/v1/translate", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Translation().(NoopTranslationHooks); !ok {
		t.Error("Translation() should return NoopTranslationHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := API().(NoopAPIHooks); !ok {
		t.Error("API() should return NoopAPIHooks by default")
	}

	counter := &countingTranslationHooks{}
	SetTranslationHooks(counter)
	Translation().OnTranslateStart(context.Background(), "m", 1)
	if counter.starts.Load() != 1 {
		t.Error("registered hooks did not receive the event")
	}

	// nil registration keeps the current hooks.
	SetTranslationHooks(nil)
	Translation().OnTranslateStart(context.Background(), "m", 1)
	if counter.starts.Load() != 2 {
		t.Error("nil registration should not replace hooks")
	}

	Reset()
	if _, ok := Translation().(NoopTranslationHooks); !ok {
		t.Error("Reset() should restore noop hooks")
	}
}

type countingTranslationHooks struct {
	NoopTranslationHooks
	starts atomic.Int64
}

func (h *countingTranslationHooks) OnTranslateStart(context.Context, string, int) {
	h.starts.Add(1)
}
