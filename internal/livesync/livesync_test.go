package livesync

import (
	"context"
	"log/slog"
	"testing"

	"github.com/vk/flowgraph/internal/ctxlog"
)

func TestPublish_NilPublisherIsNoOp(t *testing.T) {
	ctx := ctxlog.WithLogger(context.Background(), slog.Default())
	var p *Publisher

	p.Publish(ctx, PreviewUpdate{NodeID: "n1", Cursor: 0, Values: []any{1}})
	p.Close()
}
