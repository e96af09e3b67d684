package services

// AuthGate is the admin gate: a single shared secret compared as-is. It only
// gates HTTP affordances and is not a hardened security boundary; the store
// enforces no parallel authorization.
type AuthGate struct {
	secret string
}

func NewAuthGate(secret string) *AuthGate {
	return &AuthGate{secret: secret}
}

// Verify reports whether the candidate matches the configured secret. An
// unconfigured (empty) secret never verifies, so a missing env var cannot
// leave the admin panel wide open.
func (g *AuthGate) Verify(candidate string) bool {
	return g.secret != "" && candidate == g.secret
}
