package imgvault

import "strings"

// cdnHostFragments are substrings of hosts known to append volatile,
// per-request query parameters (cache busters, signatures, delivery hints)
// to otherwise stable asset paths.
var cdnHostFragments = []string{
	"imgur.com",
	"twimg.com",
	"pinimg.com",
	"cdninstagram.com",
	"gstatic.com",
	"googleusercontent.com",
	"wixmp.com",
	"cloudfront.net",
	"akamaihd.net",
	"discordapp.com",
	"discordapp.net",
	"redd.it",
	"wp.com",
}

// facebookHostFragments mark the Facebook asset domains, which embed the
// numeric resource id in the path (fbcdn) or in a small stable parameter
// subset (facebook.com photo pages) and bury it under volatile signing
// parameters.
var facebookHostFragments = []string{
	"fbcdn.net",
	"facebook.com",
	"fbsbx.com",
}

// facebookEssentialParams are the query parameters that identify the
// resource itself on facebook.com-style URLs, as opposed to per-request
// delivery parameters.
var facebookEssentialParams = []string{"fbid", "id", "set"}

func isFacebookHost(host string) bool {
	return hostMatchesAny(host, facebookHostFragments)
}

func isCDNHost(host string) bool {
	return hostMatchesAny(host, cdnHostFragments)
}

func hostMatchesAny(host string, fragments []string) bool {
	lower := strings.ToLower(host)
	for _, f := range fragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}
