package handlers

import (
	"context"

	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/analytics"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/geo"
)

// TableLoader is the slice of the store the handlers need. Load returns an
// empty table plus an error wrapping store.ErrDataUnavailable when the
// source cannot serve the relation.
type TableLoader interface {
	Load(ctx context.Context, name string) (analytics.Table, error)
}

// DataContext carries everything a request needs: the table store and the
// boundary index. Built once in main and passed to every handler
// constructor; there are no package-level handles.
type DataContext struct {
	Tables  TableLoader
	Regions *geo.RegionIndex
}
