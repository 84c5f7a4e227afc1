package database

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestStatusNilClient(t *testing.T) {
	if got := Status(context.Background(), nil); got != "not_configured" {
		t.Errorf("Status(nil) = %q, want not_configured", got)
	}
	if err := Disconnect(nil, time.Second); err != nil {
		t.Errorf("Disconnect(nil) = %v, want nil", err)
	}
}

func TestNewMongoUnreachable(t *testing.T) {
	// Port 1 on loopback refuses connections, so server selection fails fast.
	_, err := NewMongo(context.Background(), "mongodb://127.0.0.1:1/?connect=direct", 500*time.Millisecond)
	if err == nil {
		t.Fatal("NewMongo error = nil, want ping failure")
	}
}

func TestNewMongoLive(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	client, err := NewMongo(context.Background(), uri, 10*time.Second)
	if err != nil {
		t.Fatalf("NewMongo: %v", err)
	}
	defer Disconnect(client, 5*time.Second)

	if got := Status(context.Background(), client); got != "connected" {
		t.Errorf("Status = %q, want connected", got)
	}
}
