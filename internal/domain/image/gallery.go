package image

import (
	"net/url"
	"strings"
)

// Gallery defaults.
const (
	DefaultCDNHost       = "edge-fr.dolce-gusto.com"
	DefaultLegacySegment = "/ndgfredge"
	DefaultGalleryAmount = 3
)

// MediaItem is a product image as returned by product search.
type MediaItem struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// Rewriter moves media URLs onto the CDN host.
type Rewriter struct {
	host          string
	legacySegment string
}

// NewRewriter creates a Rewriter. Empty arguments take the defaults.
func NewRewriter(host, legacySegment string) Rewriter {
	if host == "" {
		host = DefaultCDNHost
	}
	if legacySegment == "" {
		legacySegment = DefaultLegacySegment
	}
	return Rewriter{host: host, legacySegment: legacySegment}
}

// Rewrite strips an http(s) scheme, forces https and the CDN host, and removes
// the first legacy path segment. The port, the escaped path, the query and the
// fragment are kept; an empty path becomes "/". ok is false for empty or
// unparsable input.
func (r Rewriter) Rewrite(raw string) (string, bool) {
	rest := stripScheme(raw)
	if rest == "" {
		return "", false
	}
	u, err := url.Parse("https://" + rest)
	if err != nil || u.Host == "" {
		return "", false
	}

	host := r.host
	if port := u.Port(); port != "" && port != "443" {
		host += ":" + port
	}
	if u.User != nil {
		host = u.User.String() + "@" + host
	}

	path := strings.Replace(u.EscapedPath(), r.legacySegment, "", 1)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var b strings.Builder
	b.WriteString("https://")
	b.WriteString(host)
	b.WriteString(path)
	if u.RawQuery != "" {
		b.WriteString("?" + u.RawQuery)
	}
	if u.Fragment != "" {
		b.WriteString("#" + u.EscapedFragment())
	}
	return b.String(), true
}

// GalleryURLs rewrites every non-empty media URL in order, prepends the
// rewritten topImageURL when given, and keeps at most amount entries. Zero
// amount keeps DefaultGalleryAmount; a negative one keeps nothing.
//
// No de-duplication: a top image that also appears in images is listed twice.
func (r Rewriter) GalleryURLs(images []MediaItem, amount int, topImageURL string) []string {
	urls := make([]string, 0, len(images)+1)
	for _, img := range images {
		if u, ok := r.Rewrite(img.URL); ok {
			urls = append(urls, u)
		}
	}

	if top, ok := r.Rewrite(topImageURL); ok {
		urls = append([]string{top}, urls...)
	}

	switch {
	case amount == 0:
		amount = DefaultGalleryAmount
	case amount < 0:
		amount = 0
	}
	if len(urls) > amount {
		urls = urls[:amount]
	}
	return urls
}

func stripScheme(raw string) string {
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(raw, scheme) {
			return raw[len(scheme):]
		}
	}
	return raw
}
