package rudder

import "github.com/zoobzio/pipz"

// Request carries a dispatch through the middleware pipeline.
//
// Middleware runs ahead of the reducing terminal and sees Current equal to
// Previous; it may inspect or replace Action before the reducer runs. The
// terminal applies the root reducer and writes the result to Current, which
// the store then installs.
type Request[S any] struct {
	// Previous is the state before this dispatch.
	Previous S

	// Current is the state this dispatch will install. Until the terminal
	// runs it mirrors Previous.
	Current S

	// Action is the dispatched action. Middleware may replace it.
	Action Action
}

// Terminal is the final stage of a dispatch pipeline. It receives the
// Request after all middleware has processed it and applies the reducer.
type Terminal[S any] pipz.Chainable[*Request[S]]
