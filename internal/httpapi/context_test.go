package httpapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"
)

func TestJoinContexts_CancelsWhenBaseDone(t *testing.T) {
	a, ac := context.WithCancel(context.Background())
	b, bc := context.WithCancel(context.Background())
	defer bc()
	j, cancelJ := joinContexts(a, b)
	defer cancelJ()
	ac()
	select {
	case <-j.Done():
	case <-time.After(500 * time.Millisecond):
		t.Fatal("joined context did not cancel when base canceled")
	}
}

func TestJoinContexts_CancelsWhenRequestDone(t *testing.T) {
	a, ac := context.WithCancel(context.Background())
	defer ac()
	type key struct{}
	b, bc := context.WithCancel(context.WithValue(context.Background(), key{}, "v"))
	j, cancelJ := joinContexts(a, b)
	defer cancelJ()
	if j.Value(key{}) != "v" {
		t.Fatal("request values not visible through joined context")
	}
	bc()
	select {
	case <-j.Done():
	case <-time.After(500 * time.Millisecond):
		t.Fatal("joined context did not cancel when request canceled")
	}
}

func TestRequestContextTimeout(t *testing.T) {
	defer SetRequestTimeout(0)
	SetRequestTimeout(-time.Second)
	if requestTimeout != 0 {
		t.Fatalf("negative timeout should disable, got %v", requestTimeout)
	}
	SetRequestTimeout(10 * time.Millisecond)
	ctx, cancel := requestContext(httptest.NewRequest("GET", "/", nil))
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("expected a deadline")
	}
}

func TestSetBaseContext_NilResetsToBackground(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	SetBaseContext(ctx)
	// nolint:staticcheck // SA1012: nil restores the background context
	SetBaseContext(nil)
	if serverBaseCtx.Err() != nil {
		t.Fatal("base context not reset")
	}
}
