// Package llm provides the remote language-model boundary used by the rule
// parser and the batch validator.
package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrRemoteCall marks a model call that failed after bounded retries
// (network error, timeout, or persistent API failure).
var ErrRemoteCall = errors.New("remote model call failed")

// Completer sends a prompt to a language model and returns its raw text
// response. The pipeline is strictly sequential, so implementations never
// see concurrent calls.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CleanJSON strips the markdown code fences that models sometimes wrap
// around JSON payloads despite being asked not to.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
