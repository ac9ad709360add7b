package goalqueue

import (
	"context"
	"errors"
	"testing"
)

func TestJobFunc_Run(t *testing.T) {
	t.Parallel()
	called := false
	j := JobFunc(func(ctx context.Context) error {
		called = true
		return nil
	})
	if err := j.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !called {
		t.Fatal("closure not invoked")
	}
}

func TestJobFunc_NilRun(t *testing.T) {
	t.Parallel()
	var j JobFunc
	if err := j.Run(context.Background()); !errors.Is(err, ErrNilJobFunc) {
		t.Fatalf("expected ErrNilJobFunc, got %v", err)
	}
}
