package rudder

// Reducer computes the next state from the prior state and an action.
// Reducers must be pure and total: no side effects, no errors, and any
// action they do not recognize returns the input state unchanged. The
// identity-on-unknown contract is what makes reducers safe to compose,
// since every field reducer in a Combined sees every action.
type Reducer[S any] func(S, Action) S

// FieldOf binds a single field of S to its own reducer and default value.
// Construct with Field.
type FieldOf[S any] interface {
	seed(*S)
	apply(prev S, next *S, a Action)
}

type fieldBinding[S, F any] struct {
	def    F
	get    func(S) F
	set    func(*S, F)
	reduce Reducer[F]
}

func (b fieldBinding[S, F]) seed(s *S) {
	b.set(s, b.def)
}

func (b fieldBinding[S, F]) apply(prev S, next *S, a Action) {
	b.set(next, b.reduce(b.get(prev), a))
}

// Field binds one field of S to a reducer over the field's own type.
//
// def is the field's initial value, used only when the combined reducer
// assembles the initial state; the combinator itself never invents
// defaults. get reads the field from a state value, set writes it on a
// state under assembly.
//
// Example:
//
//	rudder.Field("", func(s Panel) string { return s.Data },
//	    func(s *Panel, v string) { s.Data = v },
//	    dataReducer)
func Field[S, F any](def F, get func(S) F, set func(*S, F), reduce Reducer[F]) FieldOf[S] {
	return fieldBinding[S, F]{def: def, get: get, set: set, reduce: reduce}
}

// Combined is a root reducer assembled from per-field reducers.
// Every field reducer receives every action against its own slice of the
// state; the results are reassembled into a fresh state value. When no
// field recognizes an action the assembled state compares equal to the
// prior state on every field.
type Combined[S any] struct {
	fields []FieldOf[S]
}

// Combine builds a Combined from field bindings.
//
//	root := rudder.Combine(
//	    rudder.Field(...),
//	    rudder.Field(...),
//	)
//	store := root.New()
func Combine[S any](fields ...FieldOf[S]) Combined[S] {
	return Combined[S]{fields: fields}
}

// Initial assembles the initial state from each field's default value.
func (c Combined[S]) Initial() S {
	var s S
	for _, f := range c.fields {
		f.seed(&s)
	}
	return s
}

// Reduce is the root reducer. Fields not covered by any binding are
// carried over from prev unchanged.
func (c Combined[S]) Reduce(prev S, a Action) S {
	next := prev
	for _, f := range c.fields {
		f.apply(prev, &next, a)
	}
	return next
}

// New constructs a Store seeded with the combined initial state.
// Equivalent to New(c.Reduce, opts...).Seed(c.Initial()).
func (c Combined[S]) New(opts ...Option[S]) *Store[S] {
	return New(c.Reduce, opts...).Seed(c.Initial())
}
