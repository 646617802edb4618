package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"taskboard/internal/logger"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":               ":8080",
		"9000":           ":9000",
		":9000":          ":9000",
		"127.0.0.1:9000": "127.0.0.1:9000",
	}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Fatalf("normalizeAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRun_ShutdownReturnsNil(t *testing.T) {
	srv := New("127.0.0.1:0", http.NotFoundHandler(), logger.Nop())

	errc := make(chan error, 1)
	go func() { errc <- srv.Run() }()

	// give ListenAndServe a moment to bind before asking it to stop
	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after Shutdown")
	}
}
