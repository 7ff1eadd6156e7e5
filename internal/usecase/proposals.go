package usecase

import (
	"context"

	"github.com/peterfpeterson/finddata/internal/domain"
	"github.com/peterfpeterson/finddata/internal/ports"
)

type LookupProposals struct {
	catalog ports.Catalog
}

func NewLookupProposals(cat ports.Catalog) *LookupProposals {
	return &LookupProposals{catalog: cat}
}

// Execute pairs each run with the proposal that owns it, preserving run
// order. Runs the catalog does not know stay in the result with
// Found=false; only catalog failures abort the lookup.
func (uc *LookupProposals) Execute(ctx context.Context, instrument string, runs []int) ([]domain.RunProposal, error) {
	out := make([]domain.RunProposal, 0, len(runs))
	for _, run := range runs {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		proposal, err := uc.catalog.FindProposal(ctx, instrument, run)
		if err != nil {
			return out, err
		}
		out = append(out, domain.RunProposal{Run: run, Proposal: proposal})
	}
	return out, nil
}

type ListProposalRuns struct {
	catalog ports.Catalog
}

func NewListProposalRuns(cat ports.Catalog) *ListProposalRuns {
	return &ListProposalRuns{catalog: cat}
}

// Execute returns the run range the catalog records for a proposal.
func (uc *ListProposalRuns) Execute(ctx context.Context, instrument, proposal string) (domain.Lookup, error) {
	return uc.catalog.ListRunsInProposal(ctx, instrument, proposal)
}
