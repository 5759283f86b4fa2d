package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shojha24/u-c-lotta-adipose/app/metrics"
)

// CollectTask runs one full collection pass: load the persisted document,
// merge every stage into it, and write it back. The document is only
// persisted when all stages succeeded, so a bad run cannot clobber good data.
type CollectTask struct {
	Task
	store     DocumentStore
	collector Collector
}

func NewCollectTask(store DocumentStore, collector Collector) *CollectTask {
	return &CollectTask{
		Task:      NewTask(TaskTypeCollect),
		store:     store,
		collector: collector,
	}
}

func (t *CollectTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	doc, err := t.store.Load(ctx)
	if err != nil {
		metrics.CollectRuns.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to load dining document: %w", err)
	}

	report := t.collector.Run(ctx, doc)

	if !report.Success() {
		metrics.CollectRuns.WithLabelValues("partial").Inc()
		return fmt.Errorf("collection incomplete: hours=%t trucks=%t menus=%d/%d",
			report.HoursOK, report.TrucksOK, report.MenusCollected, report.MenusTotal)
	}

	if err := t.store.Save(ctx, doc); err != nil {
		metrics.CollectRuns.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to persist dining document: %w", err)
	}

	metrics.CollectRuns.WithLabelValues("success").Inc()
	metrics.LastSuccess.SetToCurrentTime()

	slog.Info("Task completed",
		"type", "CollectDiningData",
		"duration", t.GetDuration(),
		"menus", fmt.Sprintf("%d/%d", report.MenusCollected, report.MenusTotal),
		"items_resolved", report.ItemsResolved,
		"items_failed", report.ItemsFailed)

	return nil
}
