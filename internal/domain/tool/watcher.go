package tool

import (
	"context"

	"github.com/effective-security/xlog"

	"github.com/matiasleandrokruk/nasamini/internal/infra/eventbus"
)

// WatchInvocations logs every TopicToolInvoked event until ctx is done.
// The returned channel is closed once the watcher has unsubscribed.
func WatchInvocations(ctx context.Context, bus eventbus.EventBus) <-chan struct{} {
	ch := bus.Subscribe(TopicToolInvoked)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				bus.Unsubscribe(TopicToolInvoked, ch)
				return
			case evt, ok := <-ch:
				if !ok {
					return
				}
				if inv, ok := evt.Payload.(InvocationEvent); ok {
					logInvocation(inv)
				}
			}
		}
	}()

	return done
}

func logInvocation(inv InvocationEvent) {
	level := xlog.INFO
	if !inv.OK {
		level = xlog.WARNING
	}
	logger.KV(level,
		"event", TopicToolInvoked,
		"call_id", inv.CallID,
		"tool", inv.Tool,
		"ok", inv.OK,
		"error_kind", inv.ErrorKind,
		"duration", inv.Duration.String(),
	)
}
