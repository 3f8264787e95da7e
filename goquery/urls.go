package goquery

import (
	"net/url"
	"strings"
)

// hostOf returns the lowercased host of rawURL without port, or "" if the
// URL cannot be parsed or is not http(s).
func hostOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// matchHost reports whether host equals one of patterns.
func matchHost(host string, patterns []string) bool {
	if host == "" {
		return false
	}
	for _, p := range patterns {
		if host == p {
			return true
		}
	}
	return false
}

// pathOf returns the path component of rawURL, which may be relative.
func pathOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return u.Path
}

// normalizeURL rewrites hosts found in aliases to canonical, forces https
// for them and strips query and fragment. Unparseable input is returned
// unchanged.
func normalizeURL(rawURL string, aliases []string, canonical string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return rawURL
	}
	u.Host = strings.ToLower(u.Host)
	if matchHost(u.Hostname(), aliases) {
		u.Host = canonical
		u.Scheme = "https"
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// absoluteURL resolves href against base. Returns "" for empty or
// unparseable hrefs.
func absoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return b.ResolveReference(ref).String()
}
