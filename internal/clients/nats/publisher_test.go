package nats

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

func TestNewPublisherValidatesConfig(t *testing.T) {
	if _, err := NewPublisher(logger.NewNop(), Config{}); err == nil {
		t.Fatal("expected missing url error")
	}
	if _, err := NewPublisher(nil, Config{URL: "nats://localhost:4222"}); err == nil {
		t.Fatal("expected missing logger error")
	}
}

func TestNewPublisherFailsFastWithoutServer(t *testing.T) {
	_, err := NewPublisher(logger.NewNop(), Config{URL: "nats://127.0.0.1:1", ConnectWait: 200 * time.Millisecond})
	if err == nil {
		t.Fatal("expected connect error")
	}
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher()
	defer p.Close()
	if err := p.Publish(context.Background(), "postboard.post.created", []byte("{}")); err != nil {
		t.Fatalf("noop publish: %v", err)
	}
}
