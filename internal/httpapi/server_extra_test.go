package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"animegen/pkg/types"
)

// blockService blocks until the context is done; used to exercise the timeout path.
type blockService struct{ mockService }

func (b *blockService) Generate(ctx context.Context, req types.GenerateRequest) (types.GenerateResponse, error) {
	<-ctx.Done()
	return types.GenerateResponse{}, mockHTTPError{msg: "Failed to generate images. Please try a different model.", code: http.StatusInternalServerError}
}

func TestGenerateLogsWithZerolog(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer SetLogger(zerolog.Nop())

	h := NewMux(&mockService{})
	req := httptest.NewRequest(http.MethodPost, "/api/generate?log=info", bytes.NewBufferString(`{"prompt":"hi","modelId":"m"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with info logging, got %d", rec.Code)
	}
	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("generate start")) || !bytes.Contains([]byte(out), []byte("generate end")) {
		t.Fatalf("missing log lines: %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("request_id")) {
		t.Fatalf("missing request_id: %q", out)
	}
}

func TestGenerateLogOffSilent(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer SetLogger(zerolog.Nop())

	h := NewMux(&mockService{})
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewBufferString(`{"prompt":"hi","modelId":"m"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Log-Level", "off")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if buf.Len() != 0 {
		t.Fatalf("expected no logs, got %q", buf.String())
	}
}

func TestCORSAndSecurityHeaders(t *testing.T) {
	SetCORSOptions(true, []string{"*"}, []string{"GET", "POST", "OPTIONS"}, []string{"Content-Type"})
	defer SetCORSOptions(false, nil, nil, nil)

	h := NewMux(&mockService{ready: true})
	req := httptest.NewRequest(http.MethodGet, "/api/models", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected X-Content-Type-Options=nosniff, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatalf("expected CORS header Access-Control-Allow-Origin to be set, got empty")
	}
}

func TestGenerateTimeoutReturns500(t *testing.T) {
	defer SetRequestTimeout(0)
	SetRequestTimeout(50 * time.Millisecond)

	h := NewMux(&blockService{})
	rec := postJSON(h, "/api/generate", `{"prompt":"x","modelId":"m"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on timeout, got %d", rec.Code)
	}
}

func TestShutdownReturnsServiceUnavailable(t *testing.T) {
	base, cancel := context.WithCancel(context.Background())
	SetBaseContext(base)
	defer SetBaseContext(nil)
	cancel()

	h := NewMux(&blockService{})
	rec := postJSON(h, "/api/generate", `{"prompt":"x","modelId":"m"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 after shutdown, got %d", rec.Code)
	}
	var er types.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Error != msgShuttingDown || er.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected body: %+v", er)
	}
}

func TestClientGoneWritesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := NewMux(&blockService{})
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewBufferString(`{"prompt":"x","modelId":"m"}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	body, _ := io.ReadAll(rec.Body)
	if len(body) != 0 {
		t.Fatalf("expected no body once the client is gone, got %q", body)
	}
}
