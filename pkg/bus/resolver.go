package bus

import "github.com/aretw0/espalier/pkg/domain"

// firstMatch scans candidates in their given order and returns the
// first handler whose declared message name equals the target.
//
// Multiple simultaneous matches are not disambiguated: first-found
// wins. This is an ambiguity policy, not a best-match guarantee, so
// registration order is part of the routing contract. No match is an
// empty result, not an error.
func firstMatch(candidates []domain.Handler, messageName string) (domain.Handler, bool) {
	for _, h := range candidates {
		if h.MessageName() == messageName {
			return h, true
		}
	}
	return nil, false
}
