package scraper

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/nginx-docs/internal/docs"
	"github.com/JakeFAU/nginx-docs/internal/metrics"
)

// Page kinds used for fetch metrics.
const (
	pageIndex  = "index"
	pageModule = "module"
)

// Config tells the scraper where to start and which modules to keep.
type Config struct {
	BaseURL string
	Modules []string
}

// Scraper visits the documentation site one page at a time.
type Scraper struct {
	cfg      Config
	fetcher  docs.Fetcher
	recorder *metrics.Recorder
	logger   *zap.Logger
}

// New wires a Scraper. recorder may be nil.
func New(cfg Config, fetcher docs.Fetcher, recorder *metrics.Recorder, logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{
		cfg:      cfg,
		fetcher:  fetcher,
		recorder: recorder,
		logger:   logger,
	}
}

// Run scrapes the index and every allow-listed module page. Any failure
// aborts the run and nothing is returned for the pages already visited.
func (s *Scraper) Run(ctx context.Context) (docs.Document, error) {
	s.logger.Info("Downloading index of NGINX documentation", zap.String("url", s.cfg.BaseURL))
	index, err := s.fetch(ctx, pageIndex, s.cfg.BaseURL)
	if err != nil {
		return docs.Document{}, fmt.Errorf("fetch index: %w", err)
	}
	modules, err := ParseIndex(index, s.cfg.Modules)
	if err != nil {
		return docs.Document{}, err
	}
	s.logger.Info("Downloading documentation of modules", zap.Int("modules", len(modules)))

	for i := range modules {
		if err := ctx.Err(); err != nil {
			return docs.Document{}, fmt.Errorf("scrape interrupted: %w", err)
		}
		if err := s.scrapeModule(ctx, &modules[i]); err != nil {
			return docs.Document{}, err
		}
	}
	return docs.Document{Modules: modules}, nil
}

func (s *Scraper) scrapeModule(ctx context.Context, module *docs.Module) error {
	s.logger.Info("Downloading module", zap.String("module", module.Name), zap.String("url", module.Link))
	page, err := s.fetch(ctx, pageModule, module.Link)
	if err != nil {
		return fmt.Errorf("fetch module %s: %w", module.Name, err)
	}
	result, err := ParseDirectives(page.HTML)
	if err != nil {
		return fmt.Errorf("extract module %s: %w", module.Name, err)
	}
	module.Directives = result.Directives

	s.recorder.ObserveModule(module.Name, len(result.Directives), result.Excluded, result.Commercial)
	s.logger.Debug("Module extracted",
		zap.String("module", module.Name),
		zap.Int("directives", len(result.Directives)),
		zap.Int("excluded", result.Excluded),
		zap.Int("commercial", result.Commercial),
	)
	return nil
}

func (s *Scraper) fetch(ctx context.Context, kind, url string) (docs.Page, error) {
	start := time.Now()
	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return docs.Page{}, err
	}
	s.recorder.ObserveFetch(kind, time.Since(start))
	return page, nil
}
