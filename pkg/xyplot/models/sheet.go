package models

// SheetData represents the plots found on a single sheet.
type SheetData struct {
	// Charts contains charts detected on the sheet.
	Charts []Chart `json:"charts,omitempty" yaml:"charts,omitempty"`
	// TableCandidates contains cell ranges likely representing tables.
	TableCandidates []string `json:"table_candidates,omitempty" yaml:"table_candidates,omitempty"`
	// TablePlots contains plots built from table candidates when the
	// sheet has no charts.
	TablePlots []PlotData `json:"table_plots,omitempty" yaml:"table_plots,omitempty"`
}
