package api

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// httpSchemeRe recognizes resource paths that already carry an absolute
// HTTP(S) scheme. Anything else is coerced to http://.
var httpSchemeRe = regexp.MustCompile(`(?i)^https?://`)

// NormalizeResource turns a raw resource path, as extracted from a request
// path after the service prefix, into a normalized absolute resource URI.
// Spaces are re-escaped to %20 and bare host/path forms gain an http://
// prefix. The result is the cache and routing key, so normalization must
// be deterministic.
func NormalizeResource(raw string) (string, error) {
	path := strings.ReplaceAll(raw, " ", "%20")
	if path == "" {
		return "", fmt.Errorf("empty resource path")
	}

	if !httpSchemeRe.MatchString(path) {
		path = "http://" + path
	}

	u, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("no host in %q", path)
	}
	return u.String(), nil
}
