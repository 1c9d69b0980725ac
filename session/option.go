package session

// Option configures a Broker.
type Option func(b *Broker)

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(fn func() string) Option {
	return func(b *Broker) {
		if fn != nil {
			b.newID = fn
		}
	}
}
