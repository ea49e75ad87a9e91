package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/JakeFAU/nginx-docs/internal/app"
	"github.com/JakeFAU/nginx-docs/internal/config"
	"github.com/JakeFAU/nginx-docs/internal/docs"
	collyfetcher "github.com/JakeFAU/nginx-docs/internal/fetcher/colly"
	headlessfetcher "github.com/JakeFAU/nginx-docs/internal/fetcher/headless"
	"github.com/JakeFAU/nginx-docs/internal/policy/ratelimit"
	"github.com/JakeFAU/nginx-docs/internal/scraper"
)

func main() {
	app.Main("ngxscrape", run)
}

func run(ctx context.Context, a *app.App) error {
	if err := a.Store.CheckWritable(); err != nil {
		return err
	}
	fetcher, closeFetcher, err := newFetcher(a.Config, a.Logger.Named("fetcher"))
	if err != nil {
		return err
	}
	defer closeFetcher()

	throttled := ratelimit.Wrap(fetcher, ratelimit.Config{
		RPS:   a.Config.Fetcher.RequestsPerSecond,
		Burst: a.Config.Fetcher.Burst,
	}, a.Recorder)

	s := scraper.New(scraper.Config{
		BaseURL: a.Config.Docs.BaseURL,
		Modules: a.Config.Docs.Modules,
	}, throttled, a.Recorder, a.Logger.Named("scraper"))

	doc, err := s.Run(ctx)
	if err != nil {
		return err
	}

	a.Logger.Info("Saving documentation", zap.String("file", a.Config.Storage.Document), zap.Int("modules", len(doc.Modules)))
	if err := a.Store.WriteJSON(a.Config.Storage.Document, doc); err != nil {
		return fmt.Errorf("save documentation: %w", err)
	}
	return nil
}

func newFetcher(cfg config.Config, logger *zap.Logger) (docs.Fetcher, func(), error) {
	switch cfg.Fetcher.Kind {
	case config.FetcherColly:
		return collyfetcher.New(collyfetcher.Config{
			UserAgent: cfg.Fetcher.UserAgent,
			Timeout:   cfg.FetchTimeout(),
		}), func() {}, nil
	default:
		f, err := headlessfetcher.NewChromedp(headlessfetcher.Config{
			Headless:          cfg.Headless.Enabled,
			UserAgent:         cfg.Fetcher.UserAgent,
			NavigationTimeout: cfg.NavigationTimeout(),
			SlowMo:            cfg.SlowMo(),
			BlockImages:       cfg.Headless.BlockImages,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("launch browser: %w", err)
		}
		return f, f.Close, nil
	}
}
