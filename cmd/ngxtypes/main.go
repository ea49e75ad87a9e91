// Package main hosts the second pipeline stage: it reads documentation.json
// and prints how often each raw syntax type occurs, as input for curating
// types-mapping.json.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/JakeFAU/nginx-docs/internal/app"
	"github.com/JakeFAU/nginx-docs/internal/docs"
	"github.com/JakeFAU/nginx-docs/internal/storage/local"
	"github.com/JakeFAU/nginx-docs/internal/typestats"
)

func main() {
	app.Main("ngxtypes", func(ctx context.Context, a *app.App) error {
		return run(ctx, a, os.Stdout)
	})
}

func run(_ context.Context, a *app.App, out io.Writer) error {
	var doc docs.Document
	if err := a.Store.ReadJSON(a.Config.Storage.Document, &doc); err != nil {
		return fmt.Errorf("load documentation: %w", err)
	}

	stats := typestats.Analyze(doc)
	a.Recorder.SetRawTypes(stats.Len())
	a.Logger.Info("Analyzed raw types",
		zap.Int("distinct", stats.Len()),
		zap.Int("repeated", len(stats.Repeated())),
	)

	if err := typestats.Report(out, stats); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if !a.Config.Types.EmitSkeleton {
		return nil
	}
	b, err := local.Encode(stats.Skeleton())
	if err != nil {
		return fmt.Errorf("encode mapping skeleton: %w", err)
	}
	if _, err := fmt.Fprintf(out, "%s\n", b); err != nil {
		return fmt.Errorf("write mapping skeleton: %w", err)
	}
	return nil
}
