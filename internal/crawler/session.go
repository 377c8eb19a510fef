package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	colly "github.com/gocolly/colly/v2"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/config"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
)

// Transport defaults for listing page loads.
const (
	defaultMaxIdleConns          = 10
	defaultIdleConnTimeout       = 30 * time.Second
	defaultTLSHandshakeTimeout   = 10 * time.Second
	defaultExpectContinueTimeout = time.Second
)

// ErrSessionClosed is returned when a closed session is used.
var ErrSessionClosed = errors.New("crawl session closed")

// Session owns the network state of one crawl: the collector, its transport and rate limit.
// It is not safe for concurrent use; the crawl loop is its only user.
type Session struct {
	collector *colly.Collector
	transport *http.Transport
	cfg       config.CrawlerConfig
	log       logger.Logger

	closeOnce sync.Once
	closed    bool
}

// NewSession configures a collector for listing page loads. Callers must Close the session.
func NewSession(ctx context.Context, cfg config.CrawlerConfig, log logger.Logger) (*Session, error) {
	if cfg.PageTimeout <= 0 {
		return nil, errors.New("crawler page timeout must be greater than 0")
	}

	opts := []colly.CollectorOption{
		colly.StdlibContext(ctx),
		colly.AllowURLRevisit(),
		colly.MaxDepth(1),
	}
	if !cfg.RespectRobotsTxt {
		opts = append(opts, colly.IgnoreRobotsTxt())
	}
	if cfg.UserAgent != "" {
		opts = append(opts, colly.UserAgent(cfg.UserAgent))
	}
	if cfg.MaxBodySize > 0 {
		opts = append(opts, colly.MaxBodySize(cfg.MaxBodySize))
	}

	collector := colly.NewCollector(opts...)
	collector.SetRequestTimeout(cfg.PageTimeout)

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          defaultMaxIdleConns,
		IdleConnTimeout:       defaultIdleConnTimeout,
		TLSHandshakeTimeout:   defaultTLSHandshakeTimeout,
		ResponseHeaderTimeout: cfg.PageTimeout,
		ExpectContinueTimeout: defaultExpectContinueTimeout,
	}
	collector.WithTransport(transport)

	if err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       cfg.PageDelay,
		Parallelism: 1,
	}); err != nil {
		return nil, fmt.Errorf("failed to set rate limit: %w", err)
	}

	log.Debug("Crawl session opened",
		logger.Duration("page_timeout", cfg.PageTimeout),
		logger.Duration("page_delay", cfg.PageDelay),
		logger.Bool("respect_robots_txt", cfg.RespectRobotsTxt),
	)

	return &Session{
		collector: collector,
		transport: transport,
		cfg:       cfg,
		log:       log,
	}, nil
}

// pageCollector returns a collector for one listing page. Clones share the session's
// transport and limits but carry their own callbacks.
func (s *Session) pageCollector() (*colly.Collector, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	return s.collector.Clone(), nil
}

// Close releases idle connections. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed = true
		s.transport.CloseIdleConnections()
		s.log.Debug("Crawl session closed")
	})
}
