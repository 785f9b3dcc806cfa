// Package tui bridges a rudder store to a bubbletea program.
//
// A Connected model keeps the container/presentational split explicit:
// state maps to props through a pure mapState function, key presses map to
// dispatched actions through bindings, and the view is a pure function of
// props. The view only re-renders when the derived props change.
//
//	connected := tui.Connect(store, mapState, view).
//	    Bind("c", ChangeData{Data: "the Presenter changed me"}).
//	    QuitOn("q", "ctrl+c")
//
//	if _, err := tea.NewProgram(connected).Run(); err != nil {
//	    log.Fatal(err)
//	}
package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zoobzio/rudder"
)

// stateMsg carries a post-dispatch snapshot from the store subscription
// into the bubbletea update loop.
type stateMsg[S any] struct {
	state S
}

// Connected is a bubbletea model wired to a rudder store.
//
// On Init it subscribes to the store; on quit it unsubscribes. Store
// changes made outside the program (pumps, other goroutines) arrive as
// messages through the subscription; changes dispatched from key bindings
// are reflected immediately in the same update.
type Connected[S any, P comparable] struct {
	store    *rudder.Store[S]
	mapState func(S) P
	view     func(P) string

	keys map[string]rudder.Action
	quit map[string]bool

	props   P
	frame   string
	renders int

	changes chan S
	unsub   func()

	// closeMu orders the subscription callback against Close: a dispatch
	// already inside the store's notify loop may still invoke the callback
	// after unsubscribing, and it must not send on a closed channel.
	closeMu sync.Mutex
	closed  bool
}

// Connect creates a Connected model for the store.
//
// mapState derives the view's props from state; view renders props to a
// frame. Both must be pure. The initial frame is rendered immediately from
// the store's current state.
func Connect[S any, P comparable](store *rudder.Store[S], mapState func(S) P, view func(P) string) *Connected[S, P] {
	c := &Connected[S, P]{
		store:    store,
		mapState: mapState,
		view:     view,
		keys:     make(map[string]rudder.Action),
		quit:     make(map[string]bool),
	}
	c.props = mapState(store.Current())
	c.frame = view(c.props)
	c.renders = 1
	return c
}

// Bind dispatches action when key (in tea.KeyMsg.String() form) is pressed.
func (c *Connected[S, P]) Bind(key string, action rudder.Action) *Connected[S, P] {
	c.keys[key] = action
	return c
}

// QuitOn quits the program when any of the given keys is pressed.
func (c *Connected[S, P]) QuitOn(keys ...string) *Connected[S, P] {
	for _, k := range keys {
		c.quit[k] = true
	}
	return c
}

// Renders returns how many times the view function has run.
// Unchanged props do not re-render.
func (c *Connected[S, P]) Renders() int {
	return c.renders
}

// Init subscribes to the store and starts waiting for store changes.
func (c *Connected[S, P]) Init() tea.Cmd {
	ch := make(chan S, 1)
	c.changes = ch
	c.unsub = c.store.Subscribe(func(s S) {
		c.closeMu.Lock()
		defer c.closeMu.Unlock()
		if c.closed {
			return
		}
		// Coalesce: only the latest unconsumed snapshot matters. The
		// channel is buffered with room for one, so neither send blocks.
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	})
	return c.wait()
}

// wait blocks until the subscription delivers a snapshot.
func (c *Connected[S, P]) wait() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-c.changes
		if !ok {
			return nil
		}
		return stateMsg[S]{state: s}
	}
}

// Update handles key presses and store notifications.
func (c *Connected[S, P]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg[S]:
		c.refresh(msg.state)
		return c, c.wait()

	case tea.KeyMsg:
		k := msg.String()
		if c.quit[k] {
			c.Close()
			return c, tea.Quit
		}
		if action, ok := c.keys[k]; ok {
			if err := c.store.Dispatch(context.Background(), action); err == nil {
				// Dispatch is synchronous; reflect the new state without
				// waiting for the subscription round trip.
				c.refresh(c.store.Current())
			}
		}
	}
	return c, nil
}

// refresh recomputes props and re-renders only when they changed.
func (c *Connected[S, P]) refresh(s S) {
	props := c.mapState(s)
	if props == c.props && c.renders > 0 {
		return
	}
	c.props = props
	c.frame = c.view(props)
	c.renders++
}

// View returns the last rendered frame.
func (c *Connected[S, P]) View() string {
	return c.frame
}

// Close releases the store subscription. Safe to call more than once;
// called automatically when a QuitOn key is pressed.
func (c *Connected[S, P]) Close() {
	if c.unsub == nil {
		return
	}
	c.unsub()
	c.unsub = nil

	// A notify loop that snapshotted the listener list before the
	// unsubscribe can still run the callback, so the closed flag and the
	// close itself happen under the same lock the callback takes.
	c.closeMu.Lock()
	c.closed = true
	close(c.changes)
	c.closeMu.Unlock()
}
