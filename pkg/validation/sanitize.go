package validation

import (
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy

	svgPolicyOnce sync.Once
	svgPolicy     *bluemonday.Policy
)

// isPlainText reports whether value carries no markup: the strict policy must
// leave its token stream untouched. Entity spelling does not count.
func isPlainText(value string) bool {
	return sameTokens(value, plainTextSanitizer().Sanitize(value))
}

// isSafeSVG reports whether icon markup survives the SVG allowlist. Both sides
// are compared as token streams so serialisation details such as ` />` versus
// `/>` or attribute case do not matter.
func isSafeSVG(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	return sameTokens(trimmed, SanitizeIcon(trimmed))
}

// SanitizeIcon strips everything outside the inline SVG icon allowlist.
func SanitizeIcon(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

func sameTokens(a, b string) bool {
	left, right := tokens(a), tokens(b)
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if left[i] != right[i] {
			return false
		}
	}
	return true
}

// tokens renders markup as a normalised token list. Tag and attribute names
// are lower-cased by the tokenizer, attributes are sorted, entities are
// decoded, and adjacent text is joined with surrounding whitespace dropped.
func tokens(markup string) []string {
	var (
		out  []string
		text strings.Builder
	)
	flush := func() {
		if t := strings.TrimSpace(text.String()); t != "" {
			out = append(out, "text:"+t)
		}
		text.Reset()
	}

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		tok := z.Token()
		if tt == html.TextToken {
			text.WriteString(tok.Data)
			continue
		}
		flush()

		attrs := make([]string, 0, len(tok.Attr))
		for _, attr := range tok.Attr {
			key := attr.Key
			if attr.Namespace != "" {
				key = attr.Namespace + ":" + key
			}
			attrs = append(attrs, key+"="+attr.Val)
		}
		sort.Strings(attrs)

		kind := "start"
		switch tt {
		case html.EndTagToken:
			kind = "end"
		case html.SelfClosingTagToken:
			kind = "void"
		case html.CommentToken:
			kind = "comment"
		case html.DoctypeToken:
			kind = "doctype"
		}
		out = append(out, kind+":"+tok.Data+"["+strings.Join(attrs, " ")+"]")
	}
	flush()
	return out
}

func plainTextSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func iconSanitizer() *bluemonday.Policy {
	svgPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"svg", "g", "path", "circle", "rect", "line", "polyline", "polygon",
			"ellipse", "title", "desc", "defs", "use", "clipPath",
		)

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
			"role", "focusable", "class",
		).OnElements("svg")

		policy.AllowAttrs("href", "xlink:href", "clip-path").OnElements("use")

		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "fill", "stroke", "stroke-width",
				"stroke-linecap", "stroke-linejoin", "class",
			).OnElements(el)
		}

		policy.AllowAttrs("id", "clipPathUnits").OnElements("clipPath")
		policy.AllowAttrs("id").OnElements("defs", "g")

		svgPolicy = policy
	})
	return svgPolicy
}
