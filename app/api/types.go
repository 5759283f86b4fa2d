package api

import (
	"context"
	"time"

	"github.com/shojha24/u-c-lotta-adipose/app/activity"
	"github.com/shojha24/u-c-lotta-adipose/app/dining"
	"github.com/shojha24/u-c-lotta-adipose/app/store"
)

// DocumentSource serves the latest persisted dining document.
type DocumentSource interface {
	Cached(ctx context.Context) (*dining.Document, error)
}

var _ DocumentSource = (*store.DocumentStore)(nil)

// ActivitySource reads live occupancy for dining halls and gyms.
type ActivitySource interface {
	All(ctx context.Context) map[string]activity.Reading
	One(ctx context.Context, id string) (activity.Reading, error)
}

var _ ActivitySource = (*activity.Client)(nil)

type Handler struct {
	docs     DocumentSource
	activity ActivitySource
	now      func() time.Time
}
