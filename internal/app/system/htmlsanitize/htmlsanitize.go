// Package htmlsanitize strips dangerous markup from user-authored content
// before it is persisted. Question bodies, answers, and friend-post
// introductions pass through here on every write path.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	policy *bluemonday.Policy
	strict *bluemonday.Policy
)

func initPolicies() {
	// UGC policy: basic formatting and safe links survive.
	policy = bluemonday.UGCPolicy()
	// Strict policy: text only, for titles and names.
	strict = bluemonday.StrictPolicy()
}

// Sanitize cleans user-generated content, keeping basic formatting tags
// and safe hrefs while removing scripts and event handlers.
func Sanitize(s string) string {
	once.Do(initPolicies)
	return policy.Sanitize(s)
}

// Text strips all markup, returning plain text. Used for single-line
// fields like titles, display names, and locations.
func Text(s string) string {
	once.Do(initPolicies)
	return strict.Sanitize(s)
}
