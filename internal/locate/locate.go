// Package locate finds the __NEXT_DATA__ script block in a decoded page.
package locate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Locator names
const (
	NameRegexp = "regex"
	NameDOM    = "dom"
)

// Locator returns the text inside the first __NEXT_DATA__ script block
type Locator interface {
	Find(page string) (string, bool)
}

// nextDataPattern matches the script tag exactly as Next.js renders it.
// (?s) lets the payload span lines; .*? stops at the nearest </script>.
var nextDataPattern = regexp.MustCompile(`(?s)<script id="__NEXT_DATA__" type="application/json">(.*?)</script>`)

// Regexp matches the literal opening tag. It is the default locator.
type Regexp struct{}

// Find implements Locator
func (Regexp) Find(page string) (string, bool) {
	m := nextDataPattern.FindStringSubmatch(page)
	if m == nil {
		return "", false
	}
	return m[1], true
}

const nextDataSelector = `script#__NEXT_DATA__[type="application/json"]`

// DOM parses the page and selects the script element, so attribute order,
// quoting and extra attributes on the tag do not matter.
type DOM struct{}

// Find implements Locator
func (DOM) Find(page string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", false
	}
	sel := doc.Find(nextDataSelector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Text(), true
}

// ByName returns the locator registered under name
func ByName(name string) (Locator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameRegexp:
		return Regexp{}, nil
	case NameDOM:
		return DOM{}, nil
	default:
		return nil, fmt.Errorf("unknown locator '%s' (want %s or %s)", name, NameRegexp, NameDOM)
	}
}
