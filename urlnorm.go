package imgvault

import (
	"net/url"
)

// NormalizeURL canonicalizes a capture URL for context comparison.
//
// Facebook-class hosts lose their volatile signing parameters; whether the
// stable resource-id parameters survive is governed by
// KeepFacebookIDParams. Generic CDN hosts lose the query string entirely.
// Everything else passes through untouched, as do empty and unparseable
// inputs (fail open: a URL we cannot read is still a usable opaque key).
//
// The result is idempotent: normalizing an already normalized URL is a
// no-op.
func (c MatcherConfig) NormalizeURL(raw string) string {
	if raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	switch {
	case isFacebookHost(u.Host):
		if c.KeepFacebookIDParams {
			return originPath(u) + essentialQuery(u)
		}
		return originPath(u)
	case isCDNHost(u.Host):
		return originPath(u)
	default:
		return raw
	}
}

// EqualURLs reports whether two URLs normalize to the same canonical form.
func (c MatcherConfig) EqualURLs(a, b string) bool {
	return c.NormalizeURL(a) == c.NormalizeURL(b)
}

func originPath(u *url.URL) string {
	return u.Scheme + "://" + u.Host + u.Path
}

// essentialQuery keeps only the facebookEssentialParams, rendered in
// url.Values order so repeated normalization is stable.
func essentialQuery(u *url.URL) string {
	q := u.Query()
	kept := url.Values{}
	for _, p := range facebookEssentialParams {
		if v := q.Get(p); v != "" {
			kept.Set(p, v)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return "?" + kept.Encode()
}
