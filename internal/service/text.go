// Package service implements the application's domain logic on top of the
// repository layer: identity and sessions, the social graph, the content
// store, feeds and the authorization gate.
package service

import (
	"regexp"
	"sort"
	"strings"
)

// A token is '#' or '@' followed by 1-30 word characters [a-zA-Z0-9_],
// matched case-insensitively, and not preceded by a word character (so
// "foo#bar" is not a hashtag but "(#bar" is). Go's RE2 has no lookbehind;
// consuming one leading non-word character (or anchoring at the start)
// yields the same matches for this token shape.
var (
	hashtagRe = regexp.MustCompile(`(?i)(?:^|[^0-9a-z_])#([a-z0-9_]{1,30})`)
	mentionRe = regexp.MustCompile(`(?i)(?:^|[^0-9a-z_])@([a-z0-9_]{1,30})`)
)

// ExtractTags returns the lower-cased hashtag and mention sets found in
// text, each sorted for deterministic output.
func ExtractTags(text string) (hashtags, mentions []string) {
	return extract(hashtagRe, text), extract(mentionRe, text)
}

func extract(re *regexp.Regexp, text string) []string {
	seen := make(map[string]struct{})
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		seen[strings.ToLower(m[1])] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Truncate shortens s to at most max characters (runes, not bytes).
// Length limits never reject input in this system; they clip it.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
