package api

// AuthState is the position of a single call in the auth recovery pipeline.
type AuthState int

const (
	// StateNormal: sent with the current access token, no recovery yet.
	StateNormal AuthState = iota
	// StateRefreshing: a 401 arrived and a new access token is being obtained.
	StateRefreshing
	// StateRetried: the call was reissued with a refreshed token. Terminal;
	// no further recovery happens whatever the retry returns.
	StateRetried
	// StateFailed: recovery was impossible. Credentials are cleared unless
	// the failure was in the credential store.
	StateFailed
)

func (s AuthState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateRefreshing:
		return "refreshing"
	case StateRetried:
		return "retried"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// canRecover reports whether a 401 in state s may start a refresh.
func (s AuthState) canRecover() bool { return s == StateNormal }
