// Package odurl composes resource URLs for an OData-style document/list
// service and serializes them together with accumulated query parameters.
//
// The service's path grammar conflates collection and indexed-item
// addressing in one string ("web/lists/items(19)"). Resolve applies the
// separator-vs-parenthesis precedence rule needed to tell a property of an
// indexed item apart from another indexer on the collection. The rule is a
// heuristic over string content: a key value that itself contains a literal
// '(' or '/' can misparse. That limitation is inherited from the service's
// own addressing scheme and is not corrected here.
package odurl

import "strings"

// Combine joins path segments with exactly one separator between them.
// Empty segments are skipped; the base keeps any leading separator it has.
func Combine(base string, paths ...string) string {
	out := strings.TrimSuffix(base, "/")
	for _, p := range paths {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		if out == "" {
			out = p
			continue
		}
		out = out + "/" + p
	}
	return out
}

// Resolve derives a resource URL and its logical parent URL from a base
// string and an optional path suffix. It is pure string manipulation and
// always produces some result; a base that does not conform to the service's
// path grammar yields a semantically wrong pair, which is the caller's
// responsibility to avoid.
//
// Three rules apply, in order:
//
//  1. An absolute base, or one with no path separator at all, is its own
//     parent: a bare root has no meaningful parent distinct from itself.
//  2. When the last '/' occurs after the last '(' (".../items(19)/fields"),
//     the resource is a nested property of an indexed item: the parent is
//     everything before the last separator.
//  3. Otherwise (".../items(19)") the last '(' marks an indexer applied
//     directly to the parent collection: the parent is everything before
//     the last '(', and the indexer segment stays attached to the URL.
func Resolve(base, path string) (url, parentURL string) {
	if IsAbsolute(base) || !strings.Contains(base, "/") {
		return Combine(base, path), base
	}
	lastSep := strings.LastIndex(base, "/")
	lastParen := strings.LastIndex(base, "(")
	if lastSep > lastParen {
		parentURL = base[:lastSep]
		return Combine(parentURL, base[lastSep+1:], path), parentURL
	}
	return Combine(base, path), base[:lastParen]
}

// IsAbsolute reports whether u carries a scheme or host of its own.
func IsAbsolute(u string) bool {
	l := strings.ToLower(u)
	return strings.HasPrefix(l, "http://") ||
		strings.HasPrefix(l, "https://") ||
		strings.HasPrefix(l, "//")
}
