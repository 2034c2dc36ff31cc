package tableview

import (
	"context"
	"sync"
)

// ConfirmDialog guards one row's delete behind an explicit confirmation.
// Dialogs are registered per render and torn down before the next one, so a
// dialog kept from a previous render can never fire a duplicate delete.
type ConfirmDialog struct {
	mu                 sync.Mutex
	closed             bool
	rowID              string
	pageToDisplayAfter int
	loader             *Loader
}

// RowID identifies the row this dialog guards.
func (d *ConfirmDialog) RowID() string {
	return d.rowID
}

// Confirm performs the delete this dialog was armed for. Confirming a torn
// down dialog is a no-op.
func (d *ConfirmDialog) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	rowID, page := d.rowID, d.pageToDisplayAfter
	d.mu.Unlock()

	return d.loader.DeleteRow(ctx, rowID, page)
}

// Cancel dismisses the dialog without side effects.
func (d *ConfirmDialog) Cancel() {}

// close tears the dialog down so a stale reference cannot delete anything.
func (d *ConfirmDialog) close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
}
