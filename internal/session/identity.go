package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/genricoloni/mediabridge/internal/domain"
)

// Matcher decides whether a session belongs to the target application.
// Comparison is case-sensitive with no normalisation.
type Matcher struct {
	exact    map[string]struct{}
	patterns []domain.AppIDPattern
}

// NewMatcher creates a matcher accepting the given exact identifiers and
// prefix/suffix patterns
func NewMatcher(ids []string, patterns []domain.AppIDPattern) *Matcher {
	exact := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		exact[id] = struct{}{}
	}
	return &Matcher{
		exact:    exact,
		patterns: append([]domain.AppIDPattern(nil), patterns...),
	}
}

// NewMatcherFromConfig builds the matcher from configured identifiers
func NewMatcherFromConfig(cfg domain.Config) *Matcher {
	s := cfg.GetSettings()
	return NewMatcher(s.AppIDs, s.AppIDPatterns)
}

// MatchID reports whether a source application identifier is accepted
func (m *Matcher) MatchID(appID string) bool {
	if _, ok := m.exact[appID]; ok {
		return true
	}
	for _, p := range m.patterns {
		if strings.HasPrefix(appID, p.Prefix) && strings.HasSuffix(appID, p.Suffix) {
			return true
		}
	}
	return false
}

// Match reads the session's source identifier and checks it.
// An error means the handle could not be queried (usually a vanished session).
func (m *Matcher) Match(ctx context.Context, s domain.Session) (bool, error) {
	appID, err := s.SourceAppID(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read source app id: %w", err)
	}
	return m.MatchID(appID), nil
}
