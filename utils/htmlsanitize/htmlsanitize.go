// Package htmlsanitize strips section content HTML down to an allowlist of
// formatting tags before it is stored.
package htmlsanitize

import (
	"strings"

	"golang.org/x/net/html"
)

var allowedTags = map[string]bool{
	"p": true, "br": true, "hr": true, "div": true, "span": true,
	"strong": true, "b": true, "em": true, "i": true, "u": true, "s": true,
	"sub": true, "sup": true, "small": true, "mark": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "dl": true, "dt": true, "dd": true,
	"blockquote": true, "code": true, "pre": true,
	"a": true, "img": true, "figure": true, "figcaption": true,
	"table": true, "thead": true, "tbody": true, "tfoot": true,
	"tr": true, "th": true, "td": true, "caption": true,
}

// elements whose content is dropped along with the tag
var droppedTags = map[string]bool{
	"script": true, "style": true, "iframe": true, "object": true,
	"embed": true, "noscript": true, "template": true, "svg": true,
	"math": true, "form": true, "textarea": true, "select": true,
}

var allowedAttrs = map[string]map[string]bool{
	"a":   {"href": true, "title": true, "target": true, "rel": true},
	"img": {"src": true, "alt": true, "title": true, "width": true, "height": true},
	"td":  {"colspan": true, "rowspan": true},
	"th":  {"colspan": true, "rowspan": true, "scope": true},
	"ol":  {"start": true, "type": true},
}

// global attributes allowed on any kept tag
var globalAttrs = map[string]bool{"class": true}

// Sanitize returns input with disallowed tags, attributes and URL schemes
// removed. Text content of removed tags is kept unless the tag is one that
// carries executable or embedded content.
func Sanitize(input string) string {
	z := html.NewTokenizer(strings.NewReader(input))
	var (
		out  strings.Builder
		skip int
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or a malformed tail; either way keep what was accepted
			return out.String()
		}

		tok := z.Token()
		switch tt {
		case html.StartTagToken:
			if droppedTags[tok.Data] {
				skip++
				continue
			}
			if skip > 0 || !allowedTags[tok.Data] {
				continue
			}
			writeTag(&out, tok, false)

		case html.SelfClosingTagToken:
			if skip > 0 || !allowedTags[tok.Data] {
				continue
			}
			writeTag(&out, tok, true)

		case html.EndTagToken:
			if droppedTags[tok.Data] {
				if skip > 0 {
					skip--
				}
				continue
			}
			if skip > 0 || !allowedTags[tok.Data] {
				continue
			}
			out.WriteString("</" + tok.Data + ">")

		case html.TextToken:
			if skip > 0 {
				continue
			}
			out.WriteString(html.EscapeString(tok.Data))
		}
	}
}

func writeTag(out *strings.Builder, tok html.Token, selfClosing bool) {
	out.WriteString("<" + tok.Data)
	for _, attr := range tok.Attr {
		key := strings.ToLower(attr.Key)
		if attr.Namespace != "" || !(globalAttrs[key] || allowedAttrs[tok.Data][key]) {
			continue
		}
		if (key == "href" || key == "src") && !safeURL(attr.Val) {
			continue
		}
		out.WriteString(" " + key + `="` + html.EscapeString(attr.Val) + `"`)
	}
	if selfClosing {
		out.WriteString(" />")
		return
	}
	out.WriteString(">")
}

func safeURL(raw string) bool {
	v := strings.ToLower(strings.TrimSpace(raw))
	// strip control and whitespace chars browsers ignore inside schemes
	v = strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, v)

	i := strings.IndexAny(v, ":/?#")
	if i < 0 || v[i] != ':' {
		// relative URL
		return true
	}
	switch v[:i] {
	case "http", "https", "mailto", "tel":
		return true
	default:
		return false
	}
}
