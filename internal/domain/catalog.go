package domain

import "fmt"

// Lookup is the outcome of a single catalog field extraction. Found reports
// whether the queried document carried the field at all; Value is only
// meaningful when Found is true.
type Lookup struct {
	Value string
	Found bool
}

// RunFile pairs a run number with the result of a data-file search. Err is a
// *NotFoundError when every filename convention missed for that run.
type RunFile struct {
	Run  int
	Path string
	Err  error
}

// RunProposal pairs a run number with its proposal lookup.
type RunProposal struct {
	Run      int
	Proposal Lookup
}

// DataFileNames returns the candidate filenames for an instrument/run pair in
// the order they are tried: the pre-ADARA event file first, then the ADARA
// one.
func DataFileNames(instrument string, run int) []string {
	return []string{
		fmt.Sprintf("%s_%d_event.nxs", instrument, run),
		fmt.Sprintf("%s_%d.nxs.h5", instrument, run),
	}
}
