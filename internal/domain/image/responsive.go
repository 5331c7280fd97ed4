package image

import (
	"net/url"
	"strconv"
	"strings"
)

// Densities are the device pixel ratios of a srcset, ascending.
var Densities = []int{1, 2, 3}

// Transform options applied by the image CDN.
const (
	fitCover      = "cover"
	formatWebP    = "webp"
	srcsetQuality = 80
)

// Resolved is a rendering URL plus density-qualified variants.
type Resolved struct {
	Src    string   `json:"src"`
	Srcset []string `json:"srcset"`
}

// SrcsetAttr joins the variants into an HTML srcset attribute value.
func (r Resolved) SrcsetAttr() string {
	return strings.Join(r.Srcset, ", ")
}

// Options are CDN transform parameters. Zero values are not emitted except
// for Crop, which is always sent.
type Options struct {
	Width   int
	Height  int
	Auto    string
	Quality int
	Crop    bool
	Fit     string
	DPI     int
}

// pairs returns the options in the order they are merged onto a URL.
func (o Options) pairs() []param {
	var out []param
	if o.Fit != "" {
		out = append(out, param{"fit", o.Fit})
	}
	out = append(out, param{"crop", strconv.FormatBool(o.Crop)})
	if o.DPI > 0 {
		out = append(out, param{"dpi", strconv.Itoa(o.DPI)})
	}
	if o.Auto != "" {
		out = append(out, param{"auto", o.Auto})
	}
	if o.Quality > 0 {
		out = append(out, param{"quality", strconv.Itoa(o.Quality)})
	}
	if o.Width > 0 {
		out = append(out, param{"width", strconv.Itoa(o.Width)})
	}
	if o.Height > 0 {
		out = append(out, param{"height", strconv.Itoa(o.Height)})
	}
	return out
}

// ResolveURL merges opts onto the query string of raw. Existing keys are
// overwritten in place, unrelated keys keep their order, new keys are appended.
// Anything after a second '?' is dropped.
func ResolveURL(raw string, opts Options) string {
	base, rest, _ := strings.Cut(raw, "?")
	query, _, _ := strings.Cut(rest, "?")

	params := parseParams(query)
	for _, p := range opts.pairs() {
		params = params.set(p.key, p.value)
	}
	return base + "?" + params.encode()
}

// ResponsiveSet builds src and a 1x/2x/3x srcset for each URL.
func ResponsiveSet(urls []string, baseWidth int) []Resolved {
	out := make([]Resolved, 0, len(urls))
	for _, u := range urls {
		src := ResolveURL(u, Options{
			Fit:   fitCover,
			Crop:  false,
			DPI:   1,
			Width: baseWidth,
		})
		srcset := make([]string, 0, len(Densities))
		for _, d := range Densities {
			variant := ResolveURL(u, Options{
				Fit:     fitCover,
				Crop:    false,
				DPI:     1,
				Auto:    formatWebP,
				Quality: srcsetQuality,
				Width:   baseWidth * d,
			})
			srcset = append(srcset, variant+" "+strconv.Itoa(d)+"x")
		}
		out = append(out, Resolved{Src: src, Srcset: srcset})
	}
	return out
}

type param struct {
	key   string
	value string
}

// params is an ordered query string. url.Values cannot be used: it encodes
// keys sorted, which reorders parameters unrelated to the transform.
type params []param

func parseParams(query string) params {
	var out params
	for _, part := range strings.Split(query, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		out = append(out, param{key: unescape(k), value: unescape(v)})
	}
	return out
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

// set replaces the first occurrence of key and drops later duplicates, or
// appends when key is absent.
func (ps params) set(key, value string) params {
	out := ps[:0:0]
	found := false
	for _, p := range ps {
		if p.key != key {
			out = append(out, p)
			continue
		}
		if !found {
			out = append(out, param{key: key, value: value})
			found = true
		}
	}
	if !found {
		out = append(out, param{key: key, value: value})
	}
	return out
}

func (ps params) encode() string {
	var b strings.Builder
	for i, p := range ps {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}
