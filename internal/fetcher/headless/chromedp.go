// Package headless renders documentation pages with a Chrome instance
// driven through chromedp.
package headless

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/JakeFAU/nginx-docs/internal/docs"
)

// Config controls the behavior of the headless fetcher.
type Config struct {
	// Headless runs Chrome without a window. Turn it off to watch a run.
	Headless          bool
	UserAgent         string
	NavigationTimeout time.Duration
	// SlowMo pauses after each navigation.
	SlowMo time.Duration
	// BlockImages fails image sub-resource requests.
	BlockImages bool
}

// Fetcher implements docs.Fetcher with a single browser tab that is reused
// for every page. It is not safe for concurrent use.
type Fetcher struct {
	cfg           Config
	logger        *zap.Logger
	tab           context.Context
	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc
}

// NewChromedp launches Chrome and prepares the tab.
func NewChromedp(cfg Config, logger *zap.Logger) (*Fetcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocatorOptions(cfg)...)
	tab, browserCancel := chromedp.NewContext(allocCtx)

	f := &Fetcher{
		cfg:           cfg,
		logger:        logger,
		tab:           tab,
		allocCancel:   allocCancel,
		browserCancel: browserCancel,
	}
	chromedp.ListenTarget(tab, f.handleEvent)

	if err := chromedp.Run(tab, f.setupActions()...); err != nil {
		f.Close()
		return nil, fmt.Errorf("chromedp warmup: %w", err)
	}
	return f, nil
}

// Close shuts the browser down.
func (f *Fetcher) Close() {
	f.browserCancel()
	f.allocCancel()
}

// Fetch navigates the tab to url and returns the rendered DOM.
func (f *Fetcher) Fetch(ctx context.Context, url string) (docs.Page, error) {
	taskCtx, cancel := context.WithTimeout(f.tab, f.navTimeout())
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var (
		html     string
		finalURL string
	)
	if err := chromedp.Run(taskCtx, f.navigateActions(url, &html, &finalURL)...); err != nil {
		return docs.Page{}, fmt.Errorf("chromedp run %s: %w", url, err)
	}
	return docs.Page{URL: url, FinalURL: finalURL, HTML: html}, nil
}

func (f *Fetcher) navigateActions(url string, html, finalURL *string) []chromedp.Action {
	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if f.cfg.SlowMo > 0 {
		actions = append(actions, chromedp.Sleep(f.cfg.SlowMo))
	}
	return append(actions,
		chromedp.Location(finalURL),
		chromedp.OuterHTML("html", html, chromedp.ByQuery),
	)
}

func (f *Fetcher) setupActions() []chromedp.Action {
	actions := []chromedp.Action{runtime.Enable()}
	if f.cfg.BlockImages {
		actions = append(actions, fetch.Enable().WithPatterns([]*fetch.RequestPattern{
			{URLPattern: "*", ResourceType: network.ResourceTypeImage},
		}))
	}
	return actions
}

func (f *Fetcher) handleEvent(ev any) {
	switch e := ev.(type) {
	case *fetch.EventRequestPaused:
		// Must not block the event loop; the CDP call waits for a reply.
		go f.resolvePaused(e)
	case *runtime.EventConsoleAPICalled:
		f.logger.Debug("browser:console",
			zap.String("type", string(e.Type)),
			zap.String("text", consoleText(e)),
		)
	}
}

func (f *Fetcher) resolvePaused(ev *fetch.EventRequestPaused) {
	c := chromedp.FromContext(f.tab)
	if c == nil || c.Target == nil {
		return
	}
	ctx := cdp.WithExecutor(f.tab, c.Target)

	var err error
	if blockRequest(ev.ResourceType) {
		err = fetch.FailRequest(ev.RequestID, network.ErrorReasonBlockedByClient).Do(ctx)
	} else {
		err = fetch.ContinueRequest(ev.RequestID).Do(ctx)
	}
	if err != nil {
		f.logger.Debug("resolve paused request", zap.String("url", requestURL(ev)), zap.Error(err))
	}
}

func (f *Fetcher) navTimeout() time.Duration {
	if f.cfg.NavigationTimeout > 0 {
		return f.cfg.NavigationTimeout
	}
	return 60 * time.Second
}

func blockRequest(resourceType network.ResourceType) bool {
	return resourceType == network.ResourceTypeImage
}

func requestURL(ev *fetch.EventRequestPaused) string {
	if ev.Request == nil {
		return ""
	}
	return ev.Request.URL
}

func consoleText(ev *runtime.EventConsoleAPICalled) string {
	parts := make([]string, 0, len(ev.Args))
	for _, arg := range ev.Args {
		switch {
		case arg == nil:
		case len(arg.Value) > 0:
			parts = append(parts, string(arg.Value))
		case arg.Description != "":
			parts = append(parts, arg.Description)
		}
	}
	return strings.Join(parts, " ")
}

// launchFlags are the Chrome command-line switches used for every run.
func launchFlags(cfg Config) map[string]any {
	return map[string]any{
		"headless":                  cfg.Headless,
		"disable-gpu":               true,
		"disable-infobars":          true,
		"no-sandbox":                true,
		"disable-setuid-sandbox":    true,
		"disable-dev-shm-usage":     true,
		"no-first-run":              true,
		"no-zygote":                 true,
		"window-size":               "1440,900",
		"ignore-certificate-errors": true,
	}
}

func allocatorOptions(cfg Config) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	for name, value := range launchFlags(cfg) {
		opts = append(opts, chromedp.Flag(name, value))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	return opts
}
