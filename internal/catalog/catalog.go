// Package catalog loads the definitions of the paginated catalog sites to harvest.
package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// Placeholders recognised in URLTemplate.
const (
	CategoryPlaceholder = "{category}"
	PagePlaceholder     = "{page}"
)

// Defaults applied to definitions that omit a field.
const (
	DefaultLinkSelector   = "a[class*='card-button--full']"
	DefaultDocumentSuffix = ".pdf"
	DefaultMaxPages       = 2
)

// Definition describes one catalog site and the categories harvested from it.
type Definition struct {
	Name        string   `mapstructure:"name"`
	URLTemplate string   `mapstructure:"url_template"`
	Categories  []string `mapstructure:"categories"`
	// LinkSelector matches the "download" anchors whose presence marks a loaded listing page.
	LinkSelector string `mapstructure:"link_selector"`
	// DocumentSuffix is the URL path suffix that identifies a harvestable document.
	DocumentSuffix string `mapstructure:"document_suffix"`
	MaxPages       int    `mapstructure:"max_pages"`
}

// PageURL renders the listing URL for a category page. The category is query-escaped.
func (d Definition) PageURL(category string, page int) string {
	r := strings.NewReplacer(
		CategoryPlaceholder, url.QueryEscape(category),
		PagePlaceholder, strconv.Itoa(page),
	)
	return r.Replace(d.URLTemplate)
}

// HasCategory reports whether category is configured for this catalog.
func (d Definition) HasCategory(category string) bool {
	for _, c := range d.Categories {
		if c == category {
			return true
		}
	}
	return false
}

func (d *Definition) applyDefaults() {
	if d.LinkSelector == "" {
		d.LinkSelector = DefaultLinkSelector
	}
	if d.DocumentSuffix == "" {
		d.DocumentSuffix = DefaultDocumentSuffix
	}
	if d.MaxPages == 0 {
		d.MaxPages = DefaultMaxPages
	}
}
