package notifications

type DispatcherOptions func(d *Dispatcher)

func WithOutputTopic(topic string) DispatcherOptions {
	return func(d *Dispatcher) {
		d.topic = topic
	}
}
