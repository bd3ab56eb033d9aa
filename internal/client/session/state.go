package session

// State is a step in the session lifecycle:
//
//	uninitialized -> hydrating -> authenticated | anonymous
//
// and authenticated <-> anonymous through explicit operations.
type State int

const (
	StateUninitialized State = iota
	StateHydrating
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateHydrating:
		return "hydrating"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// Loading reports whether the session has not settled yet.
func (s State) Loading() bool {
	return s == StateUninitialized || s == StateHydrating
}
