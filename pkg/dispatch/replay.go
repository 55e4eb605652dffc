package dispatch

import (
	"context"
	"errors"
	"io"

	"github.com/connman-go/connman/pkg/log"
	"github.com/connman-go/connman/pkg/signal"
)

// Replay reads captured incoming signals from r and sends them to out in
// file order. Other capture events are skipped. It returns nil at the end
// of the capture and does not close out.
func Replay(ctx context.Context, r *log.Reader, out chan<- signal.Message) error {
	for {
		event, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if event.Category != log.CategorySignal || event.Signal == nil {
			continue
		}

		msg := signal.Message{
			Sender:    event.Sender,
			Path:      event.Signal.Path,
			Interface: event.Signal.Interface,
			Member:    event.Signal.Member,
			Args:      event.Signal.Args,
		}
		select {
		case out <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
