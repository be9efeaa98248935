package padelfip

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// timePattern is the last-resort scan for a clock time inside raw row text.
var timePattern = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)

// eventIDPattern matches the per-event identifier the site embeds as a CSS
// class token rather than an attribute.
var eventIDPattern = regexp.MustCompile(`^idEvent_(\d+)$`)

// FieldRule is one field's extraction recipe: a selector chain tried in
// order, an attribute chain per matched element (empty means text content),
// and an optional text pattern scanned over the fragment as a last resort.
// Markup changes are repaired by editing the rule, not the traversal code.
type FieldRule struct {
	Selectors   []string
	Attrs       []string
	TextPattern *regexp.Regexp
}

// Extract applies the rule to a fragment. Absence yields "", never an error.
func (r FieldRule) Extract(s *goquery.Selection) string {
	for _, selector := range r.Selectors {
		found := s.Find(selector).First()
		if found.Length() == 0 {
			continue
		}
		if len(r.Attrs) == 0 {
			if text := cellText(found); text != "" {
				return text
			}
			continue
		}
		for _, attr := range r.Attrs {
			if value, ok := found.Attr(attr); ok && strings.TrimSpace(value) != "" {
				return strings.TrimSpace(value)
			}
		}
	}
	if r.TextPattern != nil {
		if match := r.TextPattern.FindString(s.Text()); match != "" {
			return match
		}
	}
	return ""
}

// ScanEventID scans every element for a class token of the form
// idEvent_<id> and returns the numeric suffix. When several candidates
// exist the last one encountered wins; the source page behaves as a
// sequential reduction where later occurrences overwrite earlier ones.
// With multiple distinct events on one page this picks an arbitrary-looking
// winner, which mirrors the site, so it stays.
func ScanEventID(doc *goquery.Document) (string, bool) {
	var id string
	doc.Find("[class*=idEvent_]").Each(func(_ int, s *goquery.Selection) {
		class, ok := s.Attr("class")
		if !ok {
			return
		}
		for _, token := range strings.Fields(class) {
			if m := eventIDPattern.FindStringSubmatch(token); m != nil {
				id = m[1]
			}
		}
	})
	return id, id != ""
}

// ImageURL walks the lazy-loading fallback chain of an <img> selection:
// src, data-src, data-lazy-src, then the first srcset/data-srcset
// candidate. Returns "" when nothing is populated; callers must treat an
// empty string as no image.
func ImageURL(img *goquery.Selection) string {
	if img.Length() == 0 {
		return ""
	}
	for _, attr := range []string{"src", "data-src", "data-lazy-src"} {
		if value, ok := img.Attr(attr); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	for _, attr := range []string{"srcset", "data-srcset"} {
		if value, ok := img.Attr(attr); ok {
			if candidate := firstSrcsetCandidate(value); candidate != "" {
				return candidate
			}
		}
	}
	return ""
}

// DocumentImage resolves an image for a fragment: the fragment's own <img>
// chain first, then the document's Open Graph meta image as last resort.
func DocumentImage(doc *goquery.Document, fragment *goquery.Selection) string {
	if url := ImageURL(fragment.Find("img").First()); url != "" {
		return url
	}
	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		return strings.TrimSpace(content)
	}
	return ""
}

func firstSrcsetCandidate(srcset string) string {
	for _, entry := range strings.Split(srcset, ",") {
		fields := strings.Fields(strings.TrimSpace(entry))
		if len(fields) > 0 && fields[0] != "" {
			return fields[0]
		}
	}
	return ""
}

// cellText flattens a cell that may hold a nested <img> plus text, or plain
// text: markup stripped, trimmed, internal whitespace runs collapsed.
func cellText(s *goquery.Selection) string {
	return collapseWhitespace(s.Text())
}

func collapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// scanTime pulls the first HH:MM fragment out of raw text.
func scanTime(raw string) string {
	return timePattern.FindString(raw)
}
