package main

import (
	"context"
	"os"
	"strings"
	"testing"

	mem "pet-store/internal/adapters/storage/memory"
	"pet-store/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedPets_SampleFile(t *testing.T) {
	f, err := os.Open("../../seeds/pets.yaml")
	require.NoError(t, err)
	defer f.Close()

	svc := pets.NewService(mem.NewPetRepo(), pets.Deps{})
	n, err := seedPets(context.Background(), svc, f)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	res, err := svc.Search(context.Background(), "flies", 1)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Norman", res.Items[0].Name)
	assert.Equal(t, "9.99", res.Items[0].Price.String())
}

func TestSeedPets_StopsOnInvalidEntry(t *testing.T) {
	doc := `
pets:
  - name: Ok
    birthday: "2020-01-01"
    species: Cat
    favoriteFood: Tuna
    description: A perfectly valid description that is long enough.
    price: "10"
  - name: Broken
    birthday: "2020-01-01"
    species: Cat
    favoriteFood: Tuna
    description: short
    price: "10"
`
	svc := pets.NewService(mem.NewPetRepo(), pets.Deps{})
	n, err := seedPets(context.Background(), svc, strings.NewReader(doc))
	require.ErrorIs(t, err, pets.ErrInvalidInput)
	assert.Equal(t, 1, n)
}

func TestSeedPets_BadPrice(t *testing.T) {
	doc := "pets:\n  - name: X\n    price: \"free\"\n"
	svc := pets.NewService(mem.NewPetRepo(), pets.Deps{})

	_, err := seedPets(context.Background(), svc, strings.NewReader(doc))
	require.ErrorIs(t, err, pets.ErrInvalidMoney)
}
