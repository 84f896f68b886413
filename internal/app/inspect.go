package app

import (
	"context"
	"fmt"

	"github.com/vk/fnlists/internal/ctxlog"
	"github.com/vk/fnlists/internal/edgestore"
	"github.com/vk/fnlists/internal/literal"
	"github.com/vk/fnlists/internal/typeregistry"
)

// Inspect loads every literal under the configured paths, publishes each
// one on its literal socket, reads them back through the edge store and
// writes a report. It fails if any list is still alive once the store is
// closed.
func (a *App) Inspect(ctx context.Context) error {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Inspect started.", "paths", a.config.Paths)

	lits, err := a.loader.Load(ctx, a.config.Paths...)
	if err != nil {
		return fmt.Errorf("failed to load literals: %w", err)
	}

	store := edgestore.New()
	reports, err := a.publishAndCollect(ctx, store, lits)
	literal.ReleaseAll(lits)
	if closeErr := store.Close(ctx); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	if live := a.stats.Live(); live != 0 {
		logger.Error("Lists still alive after the edge store was closed.", "live", live, "live_bytes", a.stats.LiveBytes())
		return fmt.Errorf("%d list(s) leaked", live)
	}
	logger.Info("Inspect finished.", "lists", len(reports), "allocs", a.stats.Allocs(), "frees", a.stats.Frees())

	return a.render(a.outW, reports, func() string { return listTable(reports) })
}

func (a *App) publishAndCollect(ctx context.Context, store *edgestore.Store, lits []literal.Literal) ([]ListReport, error) {
	sources := make(map[string]string, len(lits))
	for _, lit := range lits {
		addr := lit.Socket()
		if err := store.Declare(ctx, addr, lit.Value.Type()); err != nil {
			return nil, err
		}
		if err := store.Publish(ctx, addr, lit.Value); err != nil {
			return nil, err
		}
		sources[addr.String()] = lit.Source
	}

	reports := make([]ListReport, 0, len(lits))
	for _, addr := range store.Addresses() {
		v, err := store.Get(ctx, addr)
		if err != nil {
			return nil, err
		}
		r, err := newListReport(addr.String(), sources[addr.String()], v)
		v.Release()
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// Types writes the type registry.
func (a *App) Types(ctx context.Context) error {
	ctx = a.context(ctx)
	descs := typeregistry.All()
	reports := make([]TypeReport, 0, len(descs))
	for _, d := range descs {
		reports = append(reports, newTypeReport(d))
	}
	ctxlog.FromContext(ctx).Debug("Listing registered list types.", "count", len(reports))
	return a.render(a.outW, reports, func() string { return typeTable(reports) })
}
