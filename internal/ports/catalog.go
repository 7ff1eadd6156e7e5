package ports

import (
	"context"

	"github.com/peterfpeterson/finddata/internal/domain"
)

// Catalog exposes the facility catalog lookups used by the CLI. Every call is
// independent and blocking; implementations do not cache between calls.
type Catalog interface {
	// ListInstruments returns the facility's instrument codes in the
	// order the service reports them.
	ListInstruments(ctx context.Context) ([]string, error)

	// FindProposal looks up the proposal that produced a run.
	FindProposal(ctx context.Context, instrument string, run int) (domain.Lookup, error)

	// ListRunsInProposal returns the run range recorded for a proposal.
	ListRunsInProposal(ctx context.Context, instrument, proposal string) (domain.Lookup, error)

	// FindFileLocation resolves a filename to the first catalog location
	// that exists on the local filesystem.
	FindFileLocation(ctx context.Context, filename string) (domain.Lookup, error)

	// FindDataFile resolves an instrument/run pair to an on-disk path,
	// trying each filename convention in turn. The error is a
	// *domain.NotFoundError when every convention misses.
	FindDataFile(ctx context.Context, instrument string, run int) (string, error)
}
