package notifications

import (
	"context"
	"encoding/json"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Writer is the interface to be implemented by the underlying writer.
type Writer interface {
	Write(ctx context.Context, topic string, e cloudevents.Event) error
	Close(ctx context.Context) error
}

// Dispatcher queues notification requests and hands them to a Writer in
// the background. It buffers pending requests so enqueueing never blocks a
// workflow transition, and a write failure never propagates back to the
// caller: the committed state change stands either way.
type Dispatcher struct {
	buffer           *buffer
	startConsumingCh chan any
	doneCh           chan any
	writer           Writer
	topic            string
}

func NewDispatcher(w Writer, opts ...DispatcherOptions) *Dispatcher {
	d := &Dispatcher{
		buffer:           newBuffer(),
		startConsumingCh: make(chan any),
		doneCh:           make(chan any),
		writer:           w,
		topic:            defaultTopic,
	}

	for _, o := range opts {
		o(d)
	}

	go d.run()
	return d
}

// Enqueue queues one notification request for delivery.
func (d *Dispatcher) Enqueue(ctx context.Context, req Request) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}

	prevSize := d.buffer.Size()
	if err := d.buffer.PushBack(&message{
		Kind: ReviewMessageKind,
		Data: data,
	}); err != nil {
		return err
	}

	if prevSize == 0 {
		// unblock the consumer and start sending messages
		d.startConsumingCh <- struct{}{}
	}

	return nil
}

func (d *Dispatcher) Close() error {
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(closeCtx)
	g.Go(func() error {
		d.doneCh <- struct{}{}
		return d.writer.Close(ctx)
	})
	if err := g.Wait(); err != nil {
		zap.S().Errorf("notification dispatcher closed with error: %s", err)
		return err
	}

	zap.S().Named("notification_dispatcher").Info("notification dispatcher closed")

	return nil
}

func (d *Dispatcher) run() {
	for {
		select {
		case <-d.doneCh:
			return
		default:
		}

		if d.buffer.Size() == 0 {
			select {
			case <-d.startConsumingCh:
			case <-d.doneCh:
				return
			}
		}

		msg := d.buffer.Pop()
		if msg == nil {
			continue
		}

		e := cloudevents.NewEvent()
		e.SetID(uuid.NewString())
		e.SetSource("qualinet.review.planner")
		e.SetType(msg.Kind)
		_ = e.SetData(*cloudevents.StringOfApplicationJSON(), msg.Data)

		if err := d.writer.Write(context.TODO(), d.topic, e); err != nil {
			zap.S().Named("notification_dispatcher").Errorw("failed to send notification", "error", err, "event", e)
		}
	}
}
