package comm

import "github.com/itchio/wharf/state"

// NewStateConsumer returns a `state.Consumer` that prints
// directly to the console via scout's logging functions.
func NewStateConsumer() *state.Consumer {
	return &state.Consumer{
		OnMessage: Logl,
	}
}
