package usecase

import (
	"context"
	"errors"

	"github.com/peterfpeterson/finddata/internal/domain"
	"github.com/peterfpeterson/finddata/internal/ports"
)

type LocateFiles struct {
	catalog ports.Catalog
}

func NewLocateFiles(cat ports.Catalog) *LocateFiles {
	return &LocateFiles{catalog: cat}
}

// Execute resolves each run to an on-disk data file, preserving run
// order. Runs without a findable file are recorded with their error and
// the search continues; any other catalog failure stops it.
func (uc *LocateFiles) Execute(ctx context.Context, instrument string, runs []int) ([]domain.RunFile, error) {
	out := make([]domain.RunFile, 0, len(runs))
	for _, run := range runs {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		path, err := uc.catalog.FindDataFile(ctx, instrument, run)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				out = append(out, domain.RunFile{Run: run, Err: err})
				continue
			}
			return out, err
		}
		out = append(out, domain.RunFile{Run: run, Path: path})
	}
	return out, nil
}

type LocateNamedFile struct {
	catalog ports.Catalog
}

func NewLocateNamedFile(cat ports.Catalog) *LocateNamedFile {
	return &LocateNamedFile{catalog: cat}
}

// Execute looks an exact filename up in the catalog and reports the
// first registered location that exists on disk.
func (uc *LocateNamedFile) Execute(ctx context.Context, filename string) (domain.Lookup, error) {
	return uc.catalog.FindFileLocation(ctx, filename)
}
