package rudder

// Action describes an intended state change. Kind returns the discriminator
// that reducers match on; everything else an action carries is payload.
//
// Actions are plain structs:
//
//	type SetVolume struct {
//	    Level int
//	}
//
//	func (SetVolume) Kind() string { return "player.volume.set" }
//
// Actions should be treated as immutable once dispatched. Middleware may
// replace the action on a request, but must never mutate a shared one.
type Action interface {
	Kind() string
}

// initAction is the construction-time probe. The store runs it through the
// root reducer before becoming visible to callers, so a reducer that returns
// a fixed value instead of its input on the default branch will discard any
// seed state. No reducer may recognize this kind.
type initAction struct{}

func (initAction) Kind() string { return "rudder.init" }
