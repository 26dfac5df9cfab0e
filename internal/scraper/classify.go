package scraper

import "github.com/PuerkitoBio/goquery"

const (
	// Top-level content blocks of the page
	blockSelector = `div[data-elementor-type="wp-page"] > div > div.e-con-inner`

	// Nested container-of-container found only inside event groups
	innerContainerSelector = "div > div.e-con-inner"

	// DefaultMarkerAttr is the attribute MarkerClassifier looks for by default
	DefaultMarkerAttr = "data-date-marker"
)

// Classifier decides whether a top-level block starts a new day
type Classifier interface {
	IsDateMarker(block *goquery.Selection) bool
}

// ClassifierFunc adapts a plain function to the Classifier interface
type ClassifierFunc func(block *goquery.Selection) bool

// IsDateMarker calls f(block)
func (f ClassifierFunc) IsDateMarker(block *goquery.Selection) bool {
	return f(block)
}

// StructuralClassifier treats every block without a nested inner container as a
// date marker. It depends on the page builder's layout and breaks if the layout
// changes.
type StructuralClassifier struct{}

// IsDateMarker reports whether block lacks a nested inner container
func (StructuralClassifier) IsDateMarker(block *goquery.Selection) bool {
	return block.Find(innerContainerSelector).Length() == 0
}

// MarkerClassifier treats a block as a date marker when it, or anything inside
// it, carries Attr.
type MarkerClassifier struct {
	Attr string
}

// IsDateMarker reports whether the marker attribute is present
func (c MarkerClassifier) IsDateMarker(block *goquery.Selection) bool {
	attr := c.Attr
	if attr == "" {
		attr = DefaultMarkerAttr
	}
	if _, ok := block.Attr(attr); ok {
		return true
	}
	return block.Find("[" + attr + "]").Length() > 0
}
