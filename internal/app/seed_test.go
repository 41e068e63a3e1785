package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homenest/internal/app"
	"homenest/internal/domain"
)

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"propertyName": "Lake View Villa", "category": "Rent", "price": 1200},
		{"propertyName": "City Flat", "category": "Sale", "price": "85000"}
	]`), 0o600))

	items, err := app.LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.Price("1200"), items[0].Price)
	assert.Equal(t, domain.Price("85000"), items[1].Price)
}

func TestLoadSeedFile_Errors(t *testing.T) {
	_, err := app.LoadSeedFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))
	_, err = app.LoadSeedFile(path)
	assert.Error(t, err)
}

func TestSeeder_RunInsertsAll(t *testing.T) {
	repo := &fakePropertyRepo{}
	seeder := app.NewSeeder(app.NewPropertyService(repo, nil, nil), 4, 0)

	items := make([]domain.Property, 25)
	for i := range items {
		items[i].PropertyName = "p"
	}
	rep, err := seeder.Run(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, app.SeedReport{Inserted: 25}, rep)
	assert.Len(t, repo.inserted, 25)
}

func TestSeeder_RunCountsFailures(t *testing.T) {
	repo := &fakePropertyRepo{err: errors.New("duplicate key")}
	seeder := app.NewSeeder(app.NewPropertyService(repo, nil, nil), 2, 1000)

	rep, err := seeder.Run(context.Background(), make([]domain.Property, 3))
	require.NoError(t, err)
	assert.Equal(t, app.SeedReport{Failed: 3}, rep)
}

func TestSeeder_RunStopsOnCancel(t *testing.T) {
	seeder := app.NewSeeder(app.NewPropertyService(&fakePropertyRepo{}, nil, nil), 1, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := seeder.Run(ctx, make([]domain.Property, 5))
	assert.ErrorIs(t, err, context.Canceled)
}
