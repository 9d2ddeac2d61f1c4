package domain

// SessionState represents the lifecycle state of the client session.
type SessionState string

const (
	StateUnknown         SessionState = "unknown"
	StateAuthenticated   SessionState = "authenticated"
	StateUnauthenticated SessionState = "unauthenticated"
)

// validTransitions defines the allowed session state machine transitions.
// Nothing returns to StateUnknown once bootstrap has run.
var validTransitions = map[SessionState][]SessionState{
	StateUnknown:         {StateAuthenticated, StateUnauthenticated},
	StateAuthenticated:   {StateAuthenticated, StateUnauthenticated},
	StateUnauthenticated: {StateAuthenticated, StateUnauthenticated},
}

// CanTransitionTo reports whether a transition from current state to next is valid.
func (s SessionState) CanTransitionTo(next SessionState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Session is a read snapshot of the authentication state.
type Session struct {
	State    SessionState
	Token    string
	Identity *Identity
}

// IsAuthenticated is true iff a non-empty token is held and it decoded to an identity.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.Identity != nil
}
