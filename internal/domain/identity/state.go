package identity

// State is the two-state access machine for a store's session: the cart,
// checkout, and order views are reachable only in StateUnlocked.
type State string

const (
	// StateLocked renders the restricted-access view with a login call to action
	StateLocked State = "locked"
	// StateUnlocked renders the full cart/orders/checkout surface
	StateUnlocked State = "unlocked"
)

// Signal is an input to the access state machine
type Signal int

const (
	// SignalLogin fires when a session token is stored for the slug
	SignalLogin Signal = iota
	// SignalLogout fires on explicit logout
	SignalLogout
	// SignalAuthFailure fires when the upstream API reports 401/403 for the
	// stored token
	SignalAuthFailure
)

// Apply is the single authoritative transition function. Every component
// that cares about access state feeds signals through here instead of
// recomputing token checks ad hoc.
func (s State) Apply(sig Signal) State {
	switch sig {
	case SignalLogin:
		return StateUnlocked
	case SignalLogout, SignalAuthFailure:
		return StateLocked
	}
	return s
}

// StateForPresence derives the state from token presence. Used on slug
// change and on storage-change notifications.
func StateForPresence(present bool) State {
	if present {
		return StateUnlocked
	}
	return StateLocked
}
