package auth

import "github.com/dmitrijs2005/userhub/internal/common"

// Gate authenticates raw bearer tokens for inbound requests. Extracting the
// token from the transport is the HTTP layer's job; the gate only judges the
// raw string, once, with no retries.
type Gate struct {
	tokens *TokenService
}

func NewGate(tokens *TokenService) *Gate {
	return &Gate{tokens: tokens}
}

// Authenticate resolves a caller from a raw token string. An absent token is
// common.ErrUnauthenticated; verification failures propagate verbatim so the
// transport can distinguish expired from invalid.
func (g *Gate) Authenticate(rawToken string) (Caller, error) {
	if rawToken == "" {
		return Caller{}, common.ErrUnauthenticated
	}
	return g.tokens.Verify(rawToken)
}
