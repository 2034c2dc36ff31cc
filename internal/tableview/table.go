package tableview

import "io"

// Row is one listing row as the loader sees it. Concrete tables return their
// own row types behind this interface.
type Row interface {
	// RowID is the stable identifier the delete endpoints key on.
	RowID() string
	// Deletable reports whether the row gets a delete confirmation dialog.
	Deletable() bool
}

// Table is the contract a concrete listing fulfils. The loader owns
// everything else: query state, fetching, pagination, dialogs, refresh.
type Table interface {
	// Endpoint is the listing URL path. An empty endpoint means the table
	// is not bound and the loader declines to initialize.
	Endpoint() string
	// ExtractRows picks the table's rows out of a decoded envelope.
	ExtractRows(env *Envelope) ([]Row, error)
	// RenderRow writes the HTML for one row.
	RenderRow(w io.Writer, row Row) error
}
