package state

// Token returns the session token held in s, or "" when no one is signed
// in.
func Token(s State) string {
	if s.UserLogin.Data == nil {
		return ""
	}
	return s.UserLogin.Data.Token
}

// TokenProvider reads the current session token.
type TokenProvider func() string
