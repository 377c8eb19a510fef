// Package crawler walks paginated catalog listings and yields the document links they expose.
package crawler

import (
	"context"
	"errors"
	"iter"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	colly "github.com/gocolly/colly/v2"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/catalog"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/metrics"
)

// errMarkerNotFound means the listing page loaded but contained no download anchors.
var errMarkerNotFound = errors.New("download links not found on page")

// Crawler discovers document URLs for one catalog definition.
type Crawler struct {
	session *Session
	def     catalog.Definition
	log     logger.Logger
	metrics *metrics.Metrics
}

// New creates a crawler that loads pages through session.
func New(session *Session, def catalog.Definition, log logger.Logger, m *metrics.Metrics) *Crawler {
	return &Crawler{
		session: session,
		def:     def,
		log:     log.With(logger.String("catalog", def.Name)),
		metrics: m,
	}
}

// Harvest lazily yields the document links found on pages 1..maxPages of category.
// A page that fails to load or lacks download links is logged and skipped; all pages are
// visited unless the session is configured to stop on the first empty page.
func (c *Crawler) Harvest(ctx context.Context, category string, maxPages int) iter.Seq[domain.CatalogEntry] {
	return func(yield func(domain.CatalogEntry) bool) {
		log := c.log.With(logger.String("category", category))

		for page := 1; page <= maxPages; page++ {
			if ctx.Err() != nil {
				log.Info("Harvest cancelled", logger.Int("page", page))
				return
			}

			entries, err := c.visitPage(category, page)
			switch {
			case errors.Is(err, ErrSessionClosed):
				log.Error("Harvest stopped", logger.Error(err))
				return
			case errors.Is(err, errMarkerNotFound):
				log.Warn("Listing page has no download links",
					logger.Int("page", page),
					logger.String("url", c.def.PageURL(category, page)),
				)
				c.metrics.RecordPage(category, metrics.PageOutcomeEmpty)
			case err != nil:
				log.Warn("Listing page failed to load",
					logger.Int("page", page),
					logger.Error(err),
				)
				c.metrics.RecordPage(category, metrics.PageOutcomeFailed)
				continue
			case len(entries) == 0:
				c.metrics.RecordPage(category, metrics.PageOutcomeEmpty)
			default:
				c.metrics.RecordPage(category, metrics.PageOutcomeOK)
			}

			if len(entries) == 0 {
				if c.session.cfg.StopOnEmptyPage {
					log.Info("Stopping category at empty page", logger.Int("page", page))
					return
				}
				continue
			}

			log.Info("Listing page harvested",
				logger.Int("page", page),
				logger.Int("documents", len(entries)),
			)
			for _, entry := range entries {
				if !yield(entry) {
					return
				}
			}
		}
	}
}

// visitPage loads one listing page and returns its document links in page order.
func (c *Crawler) visitPage(category string, page int) ([]domain.CatalogEntry, error) {
	collector, err := c.session.pageCollector()
	if err != nil {
		return nil, err
	}

	pageURL := c.def.PageURL(category, page)
	var (
		found   bool
		entries []domain.CatalogEntry
	)

	collector.OnHTML("html", func(e *colly.HTMLElement) {
		links := e.DOM.Find(c.def.LinkSelector)
		if links.Length() == 0 {
			return
		}
		found = true

		links.Each(func(_ int, s *goquery.Selection) {
			href, ok := s.Attr("href")
			href = strings.TrimSpace(href)
			if !ok || href == "" {
				c.log.Warn("Download link without href", logger.String("page_url", pageURL))
				return
			}

			docURL := e.Request.AbsoluteURL(href)
			if !c.isDocument(docURL) {
				c.log.Warn("Dropping link that is not a document",
					logger.String("url", docURL),
					logger.String("suffix", c.def.DocumentSuffix),
				)
				return
			}

			entries = append(entries, domain.CatalogEntry{
				Category:    category,
				PageNumber:  page,
				DocumentURL: docURL,
			})
		})
	})

	if err = collector.Visit(pageURL); err != nil {
		return nil, domain.NetworkError("load listing page "+pageURL, err)
	}
	if !found {
		return nil, errMarkerNotFound
	}
	return entries, nil
}

// isDocument reports whether the URL path ends with the document suffix, ignoring case.
func (c *Crawler) isDocument(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), strings.ToLower(c.def.DocumentSuffix))
}
