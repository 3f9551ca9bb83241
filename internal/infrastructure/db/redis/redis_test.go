package redis

import "testing"

func TestClientOptions(t *testing.T) {
	opts := clientOptions(Config{Addr: "cache:6379", Password: "secret", DB: 3})

	if opts.Addr != "cache:6379" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.Password != "secret" {
		t.Fatalf("unexpected password %q", opts.Password)
	}
	if opts.DB != 3 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.MaxRetries != maxRetries {
		t.Fatalf("unexpected retries %d", opts.MaxRetries)
	}
}

func TestClientOptionsDefaults(t *testing.T) {
	opts := clientOptions(Config{Addr: "localhost:6379"})

	if opts.Password != "" {
		t.Fatalf("expected no password, got %q", opts.Password)
	}
	if opts.DB != 0 {
		t.Fatalf("expected db 0, got %d", opts.DB)
	}
}
