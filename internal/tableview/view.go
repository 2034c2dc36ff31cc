package tableview

// DisplayState selects which of the table's mutually exclusive surfaces is
// visible: the rows, the "no records yet" message, or the "no results for
// your search" message.
type DisplayState int

const (
	ShowRows DisplayState = iota
	ShowNoRecords
	ShowNoSearchResults
)

func (s DisplayState) String() string {
	switch s {
	case ShowRows:
		return "rows"
	case ShowNoRecords:
		return "no-records"
	case ShowNoSearchResults:
		return "no-search-results"
	default:
		return "unknown"
	}
}

// RenderedRow is one row ready for display.
type RenderedRow struct {
	ID        string
	HTML      string
	Deletable bool
}

// Summary is the pagination readout shown alongside the table.
type Summary struct {
	Page            int
	NumPages        int
	HasPrevious     bool
	HasNext         bool
	Total           int
	UnfilteredTotal int
}

// View is the display surface the loader drives. Implementations bind the
// rendered rows to whatever UI hosts the table.
type View interface {
	// ReplaceRows swaps the entire row set in one step.
	ReplaceRows(rows []RenderedRow)
	// SetSummary updates the pagination readout.
	SetSummary(s Summary)
	// SetDisplayState switches between rows and the two empty states.
	SetDisplayState(s DisplayState)
	// ScrollIntoView brings the table into the viewport.
	ScrollIntoView()
}
