package util

import (
	"context"
	"testing"
	"time"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  spaced  ",
			limit:  5,
			expect: "space...",
		},
		{
			name:   "counts runes not bytes",
			input:  "licitación pública",
			limit:  10,
			expect: "licitación...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestWaitFor(t *testing.T) {
	t.Run("zero duration returns immediately", func(t *testing.T) {
		if err := WaitFor(context.Background(), 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("cancelled context interrupts the wait", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := WaitFor(ctx, time.Hour); err == nil {
			t.Fatal("expected a context error")
		}
	})

	t.Run("completes after the duration", func(t *testing.T) {
		prev := sleep
		defer func() { sleep = prev }()

		slept := time.Duration(0)
		sleep = func(d time.Duration) { slept = d }

		if err := WaitFor(context.Background(), 5*time.Second); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if slept != 5*time.Second {
			t.Fatalf("slept %v, want 5s", slept)
		}
	})
}
