package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akolsi/git-evolve/internal/domain"
)

// RevisionResolver turns a user-supplied revision reference into a canonical
// 40-character revision identifier.
type RevisionResolver struct {
	gateway domain.CommandGateway
}

// NewRevisionResolver creates a resolver backed by the given gateway.
func NewRevisionResolver(gateway domain.CommandGateway) *RevisionResolver {
	return &RevisionResolver{gateway: gateway}
}

// Resolve resolves ref via rev-parse and validates the result.
// All downstream prefix matching assumes a full-length identifier, so any
// backend output that is not exactly 40 hex characters is rejected with
// domain.ErrInvalidRevision.
func (r *RevisionResolver) Resolve(ctx context.Context, ref, repoRoot string) (string, error) {
	out, err := r.gateway.Execute(ctx, []string{"rev-parse", ref}, repoRoot)
	if err != nil {
		if errors.Is(err, domain.ErrBackendUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %q: %v", domain.ErrInvalidRevision, ref, err)
	}

	resolved := strings.TrimSpace(out)
	if !isFullHexID(resolved) {
		return "", fmt.Errorf("%w: %q resolved to %q, expected a %d-character identifier",
			domain.ErrInvalidRevision, ref, resolved, domain.FullHashLength)
	}

	return resolved, nil
}

// isFullHexID reports whether s is exactly FullHashLength hex characters.
func isFullHexID(s string) bool {
	if len(s) != domain.FullHashLength {
		return false
	}
	return isHex(s)
}

// isHex reports whether s is non-empty and consists only of hex characters.
func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
