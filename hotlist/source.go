package hotlist

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kbukum/contentgen/content"
	"github.com/kbukum/contentgen/httpclient"
	"github.com/kbukum/contentgen/logger"
)

// Source pulls topics page by page. It is not safe for concurrent use.
type Source struct {
	cfg    Config
	http   *httpclient.Client
	log    *logger.Logger
	clock  func() time.Time
	buffer []*content.HotTopic
	page   int
	done   bool
}

// Option configures a Source.
type Option func(*Source)

// WithLogger sets the source logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Source) { s.log = l }
}

// WithClock sets the clock used to stamp created and updated times.
func WithClock(now func() time.Time) Option {
	return func(s *Source) { s.clock = now }
}

// New creates a hot list source.
func New(cfg Config, opts ...Option) (*Source, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := httpclient.New(httpclient.Config{
		Timeout: cfg.Timeout,
		Auth:    httpclient.BearerAuth(cfg.Token),
	})
	if err != nil {
		return nil, fmt.Errorf("hotlist: create http client: %w", err)
	}
	s := &Source{cfg: cfg, http: client, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrDefault(s.log, "hotlist")
	return s, nil
}

// Name identifies the source in logs and errors.
func (s *Source) Name() string { return "weibo-hot" }

// Next returns the next topic, fetching the next page when the buffer is
// empty. It returns (nil, false, nil) once the pages are exhausted.
func (s *Source) Next(ctx context.Context) (*content.HotTopic, bool, error) {
	for len(s.buffer) == 0 {
		if s.done {
			return nil, false, nil
		}
		if err := s.fetchPage(ctx); err != nil {
			return nil, false, err
		}
	}
	t := s.buffer[0]
	s.buffer = s.buffer[1:]
	return t, true, nil
}

func (s *Source) fetchPage(ctx context.Context) error {
	s.page++
	if s.page >= s.cfg.MaxPages {
		s.done = true
	}

	resp, err := s.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   s.cfg.Endpoint,
		Query:  map[string]string{s.cfg.PageParam: strconv.Itoa(s.page)},
	})
	if err != nil {
		return fmt.Errorf("hotlist: fetch page %d: %w", s.page, err)
	}

	topics, records, err := ParseTopics(resp.Body, s.clock())
	if err != nil {
		return fmt.Errorf("hotlist: page %d: %w", s.page, err)
	}
	if records == 0 {
		s.done = true
	}
	s.log.WithContext(ctx).Debug("hot list page fetched", map[string]interface{}{
		logger.FieldPage:  s.page,
		logger.FieldItems: len(topics),
		"skipped":         records - len(topics),
	})
	s.buffer = topics
	return nil
}
