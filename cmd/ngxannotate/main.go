// Package main hosts the third pipeline stage: it stamps goType onto every
// directive whose raw type has a curated entry in types-mapping.json and
// rewrites documentation.json in place.
package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/JakeFAU/nginx-docs/internal/annotate"
	"github.com/JakeFAU/nginx-docs/internal/app"
	"github.com/JakeFAU/nginx-docs/internal/docs"
)

func main() {
	app.Main("ngxannotate", run)
}

func run(_ context.Context, a *app.App) error {
	if err := a.Store.CheckWritable(); err != nil {
		return err
	}
	var doc docs.Document
	if err := a.Store.ReadJSON(a.Config.Storage.Document, &doc); err != nil {
		return fmt.Errorf("load documentation: %w", err)
	}
	var mapping docs.TypeMapping
	if err := a.Store.ReadJSON(a.Config.Storage.Mapping, &mapping); err != nil {
		return fmt.Errorf("load type mapping: %w", err)
	}

	res := annotate.Apply(&doc, mapping)
	a.Recorder.ObserveAnnotations(res.Annotated, res.Uncurated, res.Unmapped)
	a.Logger.Named("annotate").Info("Annotated directives",
		zap.Int("annotated", res.Annotated),
		zap.Int("uncurated", res.Uncurated),
		zap.Int("unmapped", res.Unmapped),
	)

	if err := a.Store.WriteJSON(a.Config.Storage.Document, doc); err != nil {
		return fmt.Errorf("save documentation: %w", err)
	}
	return nil
}
