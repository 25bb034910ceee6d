package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/LexTOliver/web-scraping/internal/config"
	"github.com/LexTOliver/web-scraping/internal/model"
)

// Crawl errors.
var (
	// ErrInvalidSeedURL is returned when the seed is not an absolute
	// http(s) URL. This is an input error, surfaced before any fetch.
	ErrInvalidSeedURL = errors.New("invalid seed URL: must be an absolute http(s) URL")

	// ErrSeedUnreachable is returned when the seed page itself cannot be
	// fetched. Unlike per-link failures this is fatal: the crawl cannot
	// start without the seed.
	ErrSeedUnreachable = errors.New("seed URL unreachable")
)

// DocumentWriter persists documents as they are fetched. The store
// implements it; the spider depends only on this slice of the interface so
// crawling stays testable without a database.
type DocumentWriter interface {
	// CreateSession registers a crawl session and returns its identifier.
	CreateSession(ctx context.Context, seedURL string) (string, error)

	// Put stores a document, replacing any earlier fetch of the same URL
	// within the session.
	Put(ctx context.Context, doc *model.Document) error
}

// Result is the outcome of a crawl: the session it was stored under, the
// documents collected, and the per-URL fetch failures encountered.
type Result struct {
	// SessionID identifies the crawl session in the document store.
	SessionID string `json:"session_id"`

	// Documents are the successfully fetched pages, in fetch order.
	// They have already been persisted when Crawl returns.
	Documents []model.Document `json:"documents"`

	// Failures lists URLs that could not be fetched.
	Failures []model.FetchFailure `json:"failures,omitempty"`
}

// Spider crawls web pages breadth-first from a seed URL.
//
// Traversal is level-synchronized: every frontier URL at depth d completes
// (or fails) before depth d+1 begins, because depth d+1 targets are only
// known after parsing depth-d pages. Fetches within one level run
// concurrently, bounded by the configured limit.
type Spider struct {
	// client performs the HTTP requests.
	client *http.Client

	// store receives documents as they are fetched, so partial crawls
	// survive interruption.
	store DocumentWriter

	// maxDepth limits link distance from the seed. 0 means only the seed.
	maxDepth int

	// maxPages caps the total number of fetches per crawl.
	maxPages int

	// concurrency bounds parallel fetches within a depth level.
	concurrency int

	// delay is the politeness pause each worker takes before a fetch.
	delay time.Duration

	// userAgent is the User-Agent header to send.
	userAgent string

	// maxBodySize limits the response body bytes read per page.
	maxBodySize int64

	// policy decides which discovered links are followed.
	policy string

	// logger records crawl progress.
	logger *slog.Logger

	// visited tracks normalized URLs already claimed for fetching.
	visited map[string]bool

	// mutex protects visited during concurrent link collection.
	mutex sync.Mutex
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithMaxDepth sets the maximum crawl depth.
// 0 = only the seed page, 1 = seed plus linked pages, etc.
func WithMaxDepth(depth int) SpiderOption {
	return func(s *Spider) {
		s.maxDepth = depth
	}
}

// WithMaxPages sets the maximum number of pages to fetch.
func WithMaxPages(maxPages int) SpiderOption {
	return func(s *Spider) {
		s.maxPages = maxPages
	}
}

// WithConcurrency sets the parallel fetch limit within a depth level.
func WithConcurrency(n int) SpiderOption {
	return func(s *Spider) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithDelay sets the politeness delay before each request.
func WithDelay(d time.Duration) SpiderOption {
	return func(s *Spider) {
		s.delay = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) SpiderOption {
	return func(s *Spider) {
		s.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) SpiderOption {
	return func(s *Spider) {
		s.maxBodySize = size
	}
}

// WithPolicy sets the link-filtering policy (config.PolicySameHost or
// config.PolicyAnyHTTP).
func WithPolicy(policy string) SpiderOption {
	return func(s *Spider) {
		s.policy = policy
	}
}

// WithLogger sets the logger used for crawl progress.
func WithLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		s.logger = logger
	}
}

// NewSpider creates a Spider using the given HTTP client and document
// writer.
//
// Design decision: We require an external client because it keeps timeout
// and transport configuration with the caller and allows httptest clients
// in tests.
func NewSpider(client *http.Client, store DocumentWriter, opts ...SpiderOption) *Spider {
	s := &Spider{
		client:      client,
		store:       store,
		maxDepth:    config.DefaultMaxDepth,
		maxPages:    config.DefaultMaxPages,
		concurrency: config.DefaultConcurrency,
		delay:       config.DefaultCrawlDelay,
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
		policy:      config.PolicySameHost,
		visited:     make(map[string]bool),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// fetchOutcome is the per-target result of one level worker.
type fetchOutcome struct {
	target model.CrawlTarget
	doc    *model.Document
	links  []string
	err    error
}

// Crawl traverses from the seed URL and returns the collected documents.
//
// Every successfully fetched page is persisted through the DocumentWriter
// before the next depth level starts, so an interrupted crawl leaves a
// usable partial session behind. A seed fetch failure returns
// ErrSeedUnreachable; failures on discovered links are recorded in
// Result.Failures and the traversal continues.
func (s *Spider) Crawl(ctx context.Context, seedURL string) (*Result, error) {
	seed, err := url.Parse(seedURL)
	if err != nil || (seed.Scheme != "http" && seed.Scheme != "https") || seed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeedURL, seedURL)
	}

	sessionID, err := s.store.CreateSession(ctx, seed.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create crawl session: %w", err)
	}

	result := &Result{
		SessionID: sessionID,
		Documents: make([]model.Document, 0),
	}

	s.markVisited(seed.String())
	frontier := []model.CrawlTarget{{URL: seed.String(), Depth: 0}}
	fetched := 0

	for len(frontier) > 0 {
		depth := frontier[0].Depth
		s.logger.Info("crawling depth level",
			"session", sessionID,
			"depth", depth,
			"frontier", len(frontier),
		)

		outcomes := make([]fetchOutcome, len(frontier))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)
		for i, target := range frontier {
			g.Go(func() error {
				// Politeness pause, interruptible by cancellation.
				if s.delay > 0 {
					select {
					case <-gctx.Done():
						return gctx.Err()
					case <-time.After(s.delay):
					}
				}

				doc, links, err := s.fetchPage(gctx, sessionID, target)
				outcomes[i] = fetchOutcome{target: target, doc: doc, links: links, err: err}
				// Fetch failures are recorded, not returned: one broken
				// link must not cancel the rest of the level.
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			// Only cancellation aborts the group. Return what has been
			// persisted so far.
			return result, err
		}

		next := make([]model.CrawlTarget, 0)
		for _, outcome := range outcomes {
			if outcome.err != nil {
				if outcome.target.Depth == 0 {
					return result, fmt.Errorf("%w: %v", ErrSeedUnreachable, outcome.err)
				}
				s.logger.Warn("fetch failed",
					"url", outcome.target.URL,
					"depth", outcome.target.Depth,
					"error", outcome.err,
				)
				result.Failures = append(result.Failures, model.FetchFailure{
					URL:    outcome.target.URL,
					Depth:  outcome.target.Depth,
					Reason: outcome.err.Error(),
				})
				continue
			}

			// Persist immediately. Store failures are fatal: silently
			// losing documents is worse than stopping the crawl.
			if err := s.store.Put(ctx, outcome.doc); err != nil {
				return result, fmt.Errorf("failed to store document %s: %w", outcome.doc.URL, err)
			}
			result.Documents = append(result.Documents, *outcome.doc)
			fetched++

			if outcome.target.Depth+1 > s.maxDepth {
				continue
			}
			for _, link := range outcome.links {
				if fetched+len(next) >= s.maxPages {
					break
				}
				if !s.allowed(seed, link) {
					continue
				}
				if s.claimVisited(link) {
					next = append(next, model.CrawlTarget{URL: link, Depth: outcome.target.Depth + 1})
				}
			}
		}

		frontier = next
	}

	s.logger.Info("crawl finished",
		"session", sessionID,
		"documents", len(result.Documents),
		"failures", len(result.Failures),
	)

	return result, nil
}

// fetchPage fetches one target and extracts its content and links.
func (s *Spider) fetchPage(ctx context.Context, sessionID string, target model.CrawlTarget) (*model.Document, []string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/html") &&
		!strings.Contains(contentType, "application/xhtml+xml") {
		return nil, nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize))
	if err != nil {
		return nil, nil, err
	}

	parser, err := NewParser(target.URL)
	if err != nil {
		return nil, nil, err
	}
	parsed, err := parser.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, nil, err
	}

	doc := &model.Document{
		SessionID:  sessionID,
		URL:        target.URL,
		Title:      parsed.Title,
		Text:       parsed.Text,
		Depth:      target.Depth,
		StatusCode: resp.StatusCode,
		FetchedAt:  time.Now().UTC(),
	}
	doc.TruncateText()

	return doc, parsed.Links, nil
}

// allowed applies the link policy to a discovered link.
func (s *Spider) allowed(seed *url.URL, link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}

	switch s.policy {
	case config.PolicyAnyHTTP:
		return u.Scheme == "http" || u.Scheme == "https"
	default:
		// Same-host: keeps the crawl focused on the seed's site and
		// avoids wandering into arbitrary hosts.
		return strings.EqualFold(u.Host, seed.Host)
	}
}

// markVisited records a URL as claimed without checking.
func (s *Spider) markVisited(pageURL string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.visited[normalizeURL(pageURL)] = true
}

// claimVisited atomically claims a URL. It returns true when the URL was
// not seen before, so exactly one caller wins each URL.
func (s *Spider) claimVisited(pageURL string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	key := normalizeURL(pageURL)
	if s.visited[key] {
		return false
	}
	s.visited[key] = true
	return true
}

// normalizeURL produces the visited-set key for a URL: lowercase scheme and
// host, fragment and query dropped, empty path treated as "/". The same
// page reached through different spellings dedups to one fetch.
func normalizeURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}

	u.Fragment = ""
	u.RawQuery = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}
