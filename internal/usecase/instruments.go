package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/peterfpeterson/finddata/internal/ports"
)

type ValidateInstrument struct {
	catalog ports.Catalog
}

func NewValidateInstrument(cat ports.Catalog) *ValidateInstrument {
	return &ValidateInstrument{catalog: cat}
}

// Execute canonicalizes an instrument name to upper case and checks it
// against the catalog's instrument list, returning the canonical form.
func (uc *ValidateInstrument) Execute(ctx context.Context, name string) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))

	instruments, err := uc.catalog.ListInstruments(ctx)
	if err != nil {
		return "", err
	}
	for _, inst := range instruments {
		if inst == upper {
			return upper, nil
		}
	}
	return "", fmt.Errorf("unknown instrument %q (known: %s)", name, strings.Join(instruments, ", "))
}
