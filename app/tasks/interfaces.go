package tasks

import (
	"context"

	"github.com/shojha24/u-c-lotta-adipose/app/dining"
	"github.com/shojha24/u-c-lotta-adipose/app/scrape"
)

// DocumentStore is the slice of the persistence layer a collection run needs:
// load the current document and write the merged result back.
type DocumentStore interface {
	Load(ctx context.Context) (*dining.Document, error)
	Save(ctx context.Context, doc *dining.Document) error
}

// Collector merges one pass over the upstream dining pages into the document.
type Collector interface {
	Run(ctx context.Context, doc *dining.Document) scrape.Report
}

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background task processing.
// Example usage:
//
//	scheduler := NewScheduler(store, collector)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewCollectTask(store, collector))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
