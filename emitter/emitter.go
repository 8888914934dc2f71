package emitter

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is a single published occurrence. After emission it should be
// treated as immutable.
type Event struct {
	ID      string
	Topic   string
	Payload any
	Creator string
	Time    time.Time
}

// Handler receives events synchronously. A non-nil return value is
// aggregated and surfaced to the Emit caller; it never prevents other
// handlers from running and never alters the emitting component's control
// flow.
type Handler func(ev Event) error

type subscription struct {
	id      int
	topic   string
	handler Handler
}

// Emitter is a bus scoped to one component instance. The zero value is not
// usable; construct with New or Child.
type Emitter struct {
	mu        sync.Mutex
	creator   string
	namespace []string
	parent    *Emitter
	subs      []subscription
	nextID    int
	destroyed bool
}

// New constructs a root bus. The creator label identifies the owning
// component in emitted events.
func New(creator string) *Emitter {
	return &Emitter{creator: creator}
}

// Child creates a scoped sub-bus. Events emitted on the child have their
// topics prefixed with the namespace segments and also propagate to the
// parent bus. Destroying the child does not affect the parent.
func (e *Emitter) Child(namespace []string, creator string) *Emitter {
	return &Emitter{
		creator:   creator,
		namespace: append([]string(nil), namespace...),
		parent:    e,
	}
}

// On registers a handler for topic and all of its descendant topics. The
// returned function removes the subscription; calling it twice is a no-op.
func (e *Emitter) On(topic string, h Handler) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscription{id: id, topic: topic, handler: h})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit publishes payload under topic to all matching handlers in
// registration order, then propagates the (namespace-prefixed) event to the
// parent bus. Handler errors are joined and returned; they do not stop
// dispatch. Emitting on a destroyed bus is a no-op.
func (e *Emitter) Emit(topic string, payload any) error {
	ev := Event{
		ID:      uuid.NewString(),
		Topic:   topic,
		Payload: payload,
		Creator: e.creator,
		Time:    time.Now().UTC(),
	}
	return e.dispatch(ev)
}

func (e *Emitter) dispatch(ev Event) error {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return nil
	}
	if len(e.namespace) > 0 {
		ev.Topic = strings.Join(append(append([]string{}, e.namespace...), ev.Topic), ".")
	}
	subs := make([]subscription, len(e.subs))
	copy(subs, e.subs)
	parent := e.parent
	e.mu.Unlock()

	var errs []error
	for _, s := range subs {
		if !topicMatches(s.topic, ev.Topic) {
			continue
		}
		if err := safeInvoke(s.handler, ev); err != nil {
			errs = append(errs, fmt.Errorf("handler for %q: %w", s.topic, err))
		}
	}

	if parent != nil {
		if err := parent.dispatch(ev); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func safeInvoke(h Handler, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ev)
}

// topicMatches reports whether a subscription on sub receives an event
// published under topic. "*" matches everything; otherwise sub must equal
// topic or be a segment-wise prefix of it.
func topicMatches(sub, topic string) bool {
	if sub == "*" || sub == topic {
		return true
	}
	return strings.HasPrefix(topic, sub+".")
}

// Destroy detaches all handlers and breaks the parent link. Subsequent Emit
// calls are silent no-ops, so late lifecycle events from already-settled
// work cannot crash the caller. Destroy is idempotent.
func (e *Emitter) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.destroyed = true
	e.subs = nil
	e.parent = nil
}

// Creator returns the label of the owning component.
func (e *Emitter) Creator() string { return e.creator }
