// Package sanitize holds the allow-list profiles applied to user-submitted
// text. Sanitization is a transformation, never a validator: malformed markup
// degrades to its text content, no input is rejected.
package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// AMPIframePlaceholderToken is stored inside StoryAmp and substituted with an
// absolute placeholder URL at render time.
const AMPIframePlaceholderToken = "%amp_iframe_placeholder_src%"

var (
	plainPolicy = bluemonday.StrictPolicy()
	richPolicy  = newRichPolicy()
	ampPolicy   = newAMPPolicy()

	imgTagRe      = regexp.MustCompile(`(?is)<img\b([^>]*?)/?>`)
	iframeOpenRe  = regexp.MustCompile(`(?is)<iframe\b([^>]*?)>`)
	iframeCloseRe = regexp.MustCompile(`(?i)</iframe>`)
)

// richTextElements is the editor's surface: block and inline formatting,
// links, embedded images and iframes. Everything else is stripped.
var richTextElements = []string{
	"p", "br", "h1", "h2", "blockquote", "pre",
	"ol", "ul", "li",
	"b", "i", "u", "s", "strong", "em", "sub", "sup",
}

func newRichPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(richTextElements...)
	p.AllowElements("a", "img", "iframe")

	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowAttrs("src", "alt", "width", "height").OnElements("img")
	p.AllowAttrs("src", "width", "height", "frameborder", "allowfullscreen").OnElements("iframe")

	// Uploaded assets are referenced by relative /file/ paths.
	p.AllowStandardURLs()
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes("http", "https", "mailto")

	return p
}

func newAMPPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(richTextElements...)
	p.AllowElements("a", "amp-img", "amp-iframe")

	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowAttrs("src", "alt", "width", "height", "layout", "placeholder").OnElements("amp-img")
	p.AllowAttrs("src", "width", "height", "frameborder", "allowfullscreen", "layout", "sandbox").OnElements("amp-iframe")

	// No URL parsing here: amp-img placeholders carry the substitution token,
	// which is not a parseable URL.
	return p
}

// Plain strips all markup, leaving text content only. Used for title, author
// and the client-echoed edit code.
func Plain(text string) string {
	return plainPolicy.Sanitize(text)
}

// Rich keeps only the allow-listed story markup.
func Rich(text string) string {
	return richPolicy.Sanitize(text)
}

// AMPStory derives the restricted-markup rendering of an already-sanitized
// story: img becomes amp-img, iframe becomes amp-iframe with a placeholder
// image whose src holds AMPIframePlaceholderToken.
func AMPStory(story string) string {
	s := imgTagRe.ReplaceAllString(story, `<amp-img$1 layout="responsive"></amp-img>`)
	s = iframeOpenRe.ReplaceAllString(
		s,
		`<amp-iframe$1 layout="responsive" sandbox="allow-scripts allow-same-origin">`+
			`<amp-img placeholder="" layout="fill" src="`+AMPIframePlaceholderToken+`"></amp-img>`,
	)
	s = iframeCloseRe.ReplaceAllString(s, `</amp-iframe>`)
	return ampPolicy.Sanitize(s)
}
