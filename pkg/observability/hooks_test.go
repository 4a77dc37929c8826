package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, "png", "assets/architecture.png", 8, 5)
	r.OnRenderComplete(ctx, "png", "assets/architecture.png", 1024, time.Second, nil)
}

type testRenderHooks struct {
	started   int
	completed int
}

func (h *testRenderHooks) OnRenderStart(context.Context, string, string, int, int) { h.started++ }
func (h *testRenderHooks) OnRenderComplete(context.Context, string, string, int, time.Duration, error) {
	h.completed++
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}

	custom := &testRenderHooks{}
	SetRenderHooks(custom)
	if Render() != custom {
		t.Error("SetRenderHooks should set custom hooks")
	}

	SetRenderHooks(nil)
	if Render() != custom {
		t.Error("SetRenderHooks(nil) should keep the current hooks")
	}

	Render().OnRenderStart(context.Background(), "svg", "x.svg", 1, 0)
	Render().OnRenderComplete(context.Background(), "svg", "x.svg", 10, time.Millisecond, nil)
	if custom.started != 1 || custom.completed != 1 {
		t.Errorf("hook calls = %d/%d, want 1/1", custom.started, custom.completed)
	}

	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore NoopRenderHooks")
	}
}
