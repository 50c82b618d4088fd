package plugin

import (
	"context"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/forge-editor/forge/internal/input"
)

func TestInvokeRunsOnOwnedState(t *testing.T) {
	h := NewHost(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.Run(ctx)

	result, err := h.Invoke(ctx, func(L *lua.LState) (Result, error) {
		if err := L.DoString(`x = 1 + 1`); err != nil {
			return Result{}, err
		}
		v := L.GetGlobal("x")
		if v.String() != "2" {
			t.Errorf("unexpected lua global value %q", v.String())
		}
		return Result{Commands: []input.Command{{Name: "buffer.noop"}}}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Commands) != 1 || result.Commands[0].Name != "buffer.noop" {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestInvokeRecoversScriptPanic(t *testing.T) {
	h := NewHost(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.Run(ctx)

	_, err := h.Invoke(ctx, func(L *lua.LState) (Result, error) {
		panic("boom")
	})
	if err == nil {
		t.Fatal("expected an error from a panicking call")
	}
}

func TestInvokeAfterCloseReturnsErrHostClosed(t *testing.T) {
	h := NewHost(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.Run(ctx)
	h.Close()
	time.Sleep(10 * time.Millisecond)

	_, err := h.Invoke(ctx, func(L *lua.LState) (Result, error) {
		return Result{}, nil
	})
	if err != ErrHostClosed {
		t.Errorf("expected ErrHostClosed, got %v", err)
	}
}

func TestInvokeTimesOutOnCanceledContext(t *testing.T) {
	h := NewHost(0)
	ctx := context.Background()

	callCtx, cancel := context.WithCancel(ctx)
	cancel()

	_, err := h.Invoke(callCtx, func(L *lua.LState) (Result, error) {
		return Result{}, nil
	})
	if err == nil {
		t.Fatal("expected an error for an already-canceled context")
	}
}
