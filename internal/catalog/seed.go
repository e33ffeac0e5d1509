package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/datemate/internal/db"
	"github.com/alexanderramin/datemate/internal/repository"
)

//go:embed spots.yaml
var defaultSeed []byte

// Seed loads a YAML catalog and upserts every spot in one transaction.
// Nothing is written unless every entry is valid.
func Seed(ctx context.Context, uow db.UnitOfWork, r io.Reader) (int, error) {
	f, err := DecodeSeed(r)
	if err != nil {
		return 0, err
	}
	spots, errs := f.Validate()
	if len(errs) > 0 {
		return 0, fmt.Errorf("catalog seed has %d invalid entries: %w", len(errs), errors.Join(errs...))
	}

	err = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteSpotRepo(tx)
		for i := range spots {
			if err := repo.Upsert(ctx, &spots[i]); err != nil {
				return fmt.Errorf("seeding spot %q: %w", spots[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(spots), nil
}

// SeedDefault loads the built-in catalog.
func SeedDefault(ctx context.Context, uow db.UnitOfWork) (int, error) {
	return Seed(ctx, uow, bytes.NewReader(defaultSeed))
}

// SeedFromPath loads the catalog at path, or the built-in one when path is
// empty.
func SeedFromPath(ctx context.Context, uow db.UnitOfWork, path string) (int, error) {
	if path == "" {
		return SeedDefault(ctx, uow)
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening catalog seed: %w", err)
	}
	defer f.Close()
	return Seed(ctx, uow, f)
}
