package rudder

import "testing"

// Panel is the demo state used across tests: one line of data, whether any
// data has arrived, and how many times it changed.
type Panel struct {
	Data    string
	Success bool
	Renders int
}

// ChangeData replaces the panel data.
type ChangeData struct {
	Data string
}

func (ChangeData) Kind() string { return "panel.data.change" }

// noopAction is recognized by no reducer.
type noopAction struct{}

func (noopAction) Kind() string { return "test.noop" }

func dataReducer(s string, a Action) string {
	if c, ok := a.(ChangeData); ok {
		return c.Data
	}
	return s
}

func successReducer(s bool, a Action) bool {
	if _, ok := a.(ChangeData); ok {
		return true
	}
	// Returning a literal here instead of s would clobber seeded state
	// during the store's construction probe.
	return s
}

func renderReducer(s int, a Action) int {
	if _, ok := a.(ChangeData); ok {
		return s + 1
	}
	return s
}

func panelReducer() Combined[Panel] {
	return Combine(
		Field("", func(s Panel) string { return s.Data },
			func(s *Panel, v string) { s.Data = v },
			dataReducer),
		Field(false, func(s Panel) bool { return s.Success },
			func(s *Panel, v bool) { s.Success = v },
			successReducer),
		Field(0, func(s Panel) int { return s.Renders },
			func(s *Panel, v int) { s.Renders = v },
			renderReducer),
	)
}

func TestCombined_InitialDefaults(t *testing.T) {
	got := panelReducer().Initial()
	want := Panel{Data: "", Success: false, Renders: 0}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestCombined_UnknownActionIdentity(t *testing.T) {
	root := panelReducer()
	states := []Panel{
		{},
		{Data: "hello", Success: true, Renders: 7},
		{Data: "", Success: true, Renders: 1},
	}
	for _, prev := range states {
		if got := root.Reduce(prev, noopAction{}); got != prev {
			t.Errorf("expected %+v unchanged, got %+v", prev, got)
		}
	}
}

func TestCombined_ChangeData(t *testing.T) {
	root := panelReducer()
	priors := []Panel{
		{},
		{Data: "old", Success: false, Renders: 3},
		{Data: "kept?", Success: true, Renders: 41},
	}
	for _, prev := range priors {
		got := root.Reduce(prev, ChangeData{Data: "new"})
		want := Panel{Data: "new", Success: true, Renders: prev.Renders + 1}
		if got != want {
			t.Errorf("from %+v: expected %+v, got %+v", prev, want, got)
		}
	}
}

func TestCombined_ChangeDataDoesNotMutatePrior(t *testing.T) {
	root := panelReducer()
	prev := Panel{Data: "before", Renders: 2}
	_ = root.Reduce(prev, ChangeData{Data: "after"})
	if prev.Data != "before" || prev.Renders != 2 {
		t.Errorf("prior state mutated: %+v", prev)
	}
}

func TestCombined_UnknownActionIdempotent(t *testing.T) {
	root := panelReducer()
	prev := Panel{Data: "x", Success: true, Renders: 5}
	once := root.Reduce(prev, noopAction{})
	twice := root.Reduce(once, noopAction{})
	if once != twice {
		t.Errorf("expected %+v, got %+v", once, twice)
	}
}

func TestCombined_ChangeDataNotIdempotent(t *testing.T) {
	root := panelReducer()
	once := root.Reduce(Panel{}, ChangeData{Data: "x"})
	twice := root.Reduce(once, ChangeData{Data: "x"})
	if once == twice {
		t.Error("expected render count to differ between one and two dispatches")
	}
	if twice.Renders != once.Renders+1 {
		t.Errorf("expected renders %d, got %d", once.Renders+1, twice.Renders)
	}
}

func TestCombined_SuccessNeverReverts(t *testing.T) {
	root := panelReducer()
	s := root.Reduce(Panel{}, ChangeData{Data: "x"})
	if !s.Success {
		t.Fatal("expected success after change")
	}
	s = root.Reduce(s, noopAction{})
	s = root.Reduce(s, ChangeData{Data: "y"})
	if !s.Success {
		t.Error("success reverted to false")
	}
}

func TestCombined_UncoveredFieldCarriedOver(t *testing.T) {
	type wide struct {
		Covered int
		Extra   string
	}
	root := Combine(
		Field(0, func(s wide) int { return s.Covered },
			func(s *wide, v int) { s.Covered = v },
			func(s int, a Action) int {
				if _, ok := a.(ChangeData); ok {
					return s + 1
				}
				return s
			}),
	)
	got := root.Reduce(wide{Covered: 1, Extra: "keep"}, ChangeData{})
	if got.Covered != 2 {
		t.Errorf("expected covered field reduced to 2, got %d", got.Covered)
	}
	if got.Extra != "keep" {
		t.Errorf("expected uncovered field carried over, got %q", got.Extra)
	}
}
