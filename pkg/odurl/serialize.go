package odurl

import (
	"regexp"
	"strings"
)

// aliasPattern matches an embedded aliased-parameter token: a single-quoted
// '!@label::literal' sequence anywhere in the composed URL text. A token
// that does not match (unterminated quote, missing '::') is left in the URL
// verbatim; label syntax is not validated here.
var aliasPattern = regexp.MustCompile(`'!(@.*?)::(.*?)'`)

// Serialize produces the final URL string for a composed resource URL and
// its accumulated query parameters.
//
// The target service enforces hard URL-length limits on path-embedded
// literal values. Call sites may therefore embed a long literal using the
// '!@label::value' token form; Serialize extracts each such token into an
// out-of-band query parameter (the literal re-wrapped in single quotes)
// and substitutes the bare label in the URL body. Accumulator entries are
// merged after alias extraction and win on key collision. The query string
// joins key=value pairs with '&' in first-seen key order and is appended
// after a single '?' when at least one pair exists.
//
// Serialize never mutates query; calling it twice without intervening
// mutation returns identical strings.
func Serialize(rawURL string, query *Params) string {
	merged := NewParams()
	body := aliasPattern.ReplaceAllStringFunc(rawURL, func(tok string) string {
		sub := aliasPattern.FindStringSubmatch(tok)
		merged.Add(sub[1], "'"+sub[2]+"'")
		return sub[1]
	})
	merged.Merge(query)
	if merged.Len() == 0 {
		return body
	}
	pairs := make([]string, 0, merged.Len())
	for _, k := range merged.Keys() {
		v, _ := merged.Get(k)
		pairs = append(pairs, k+"="+v)
	}
	return body + "?" + strings.Join(pairs, "&")
}
