// Package storagetest tiene la batería común que debe pasar cualquier
// implementación de pets.Repository (memoria, postgres, mongo).
package storagetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pet-store/internal/domain/pets"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewRepo devuelve un repositorio vacío para cada subtest.
type NewRepo func(t *testing.T) pets.Repository

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// Pet arma un registro válido; el índice define created_at (orden por defecto).
func Pet(i int, name, species, food, description string) pets.Pet {
	created := base.Add(time.Duration(i) * time.Minute)
	return pets.Pet{
		ID:           uuid.NewString(),
		Name:         name,
		Birthday:     "2015-06-01",
		Species:      species,
		FavoriteFood: food,
		Description:  description,
		Price:        999,
		AvatarStatus: pets.AvatarNone,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func Norman(i int) pets.Pet {
	return Pet(i, "Norman", "Spider", "Flies", "Norman is a very friendly spider who loves to hang around the house.")
}

func Run(t *testing.T, newRepo NewRepo) {
	t.Run("crud", func(t *testing.T) { testCRUD(t, newRepo(t)) })
	t.Run("not found", func(t *testing.T) { testNotFound(t, newRepo(t)) })
	t.Run("list order and pages", func(t *testing.T) { testList(t, newRepo(t)) })
	t.Run("text search", func(t *testing.T) { testTextSearch(t, newRepo(t)) })
	t.Run("text search ranking", func(t *testing.T) { testTextRanking(t, newRepo(t)) })
	t.Run("match search", func(t *testing.T) { testMatchSearch(t, newRepo(t)) })
}

func testCRUD(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	p := Norman(0)

	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assertSamePet(t, p, got)

	p.Name = "Spider"
	p.AvatarURL = "https://cdn.example.com/pets/avatar/" + p.ID
	p.AvatarStatus = pets.AvatarReady
	p.UpdatedAt = p.UpdatedAt.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, p))

	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assertSamePet(t, p, got)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	require.ErrorIs(t, err, pets.ErrNotFound)
}

func testNotFound(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	ghost := Norman(0)

	_, err := repo.GetByID(ctx, ghost.ID)
	assert.ErrorIs(t, err, pets.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, ghost), pets.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, ghost.ID), pets.ErrNotFound)
}

func testList(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		p := Norman(i)
		p.Name = fmt.Sprintf("pet-%d", i)
		require.NoError(t, repo.Create(ctx, p))
	}

	items, total, err := repo.List(ctx, pets.Page{Number: 1, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"pet-0", "pet-1", "pet-2"}, names(items))

	items, total, err = repo.List(ctx, pets.Page{Number: 2, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, []string{"pet-3", "pet-4"}, names(items))

	items, _, err = repo.List(ctx, pets.Page{Number: 3, Size: 3})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func testTextSearch(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, Norman(0)))
	require.NoError(t, repo.Create(ctx, Pet(1, "Rex", "Dog", "Bacon", "Rex is a loyal and playful dog that loves long walks in the park.")))

	items, total, err := repo.TextSearch(ctx, "bacon", pets.Page{Number: 1, Size: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"Rex"}, names(items))

	// palabra de la descripción
	items, _, err = repo.TextSearch(ctx, "house", pets.Page{Number: 1, Size: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"Norman"}, names(items))

	items, total, err = repo.TextSearch(ctx, "giraffe", pets.Page{Number: 1, Size: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)

	items, total, err = repo.TextSearch(ctx, "", pets.Page{Number: 1, Size: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func testTextRanking(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, Pet(0, "Weak", "Cat", "Kibble", "A quiet companion that sometimes watches the parrot from the window.")))
	require.NoError(t, repo.Create(ctx, Pet(1, "Strong", "Parrot", "Seeds", "A parrot that talks all day; the parrot sings and the parrot dances.")))

	items, total, err := repo.TextSearch(ctx, "parrot", pets.Page{Number: 1, Size: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []string{"Strong", "Weak"}, names(items))
}

func testMatchSearch(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, Norman(0)))
	require.NoError(t, repo.Create(ctx, Pet(1, "Rex", "Dog", "Bacon", "Rex is a loyal and playful dog that loves long walks in the park.")))

	items, total, err := repo.MatchSearch(ctx, "SPID", pets.Page{Number: 1, Size: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"Norman"}, names(items))

	// solo name/species: "Bac" está en favoriteFood
	items, _, err = repo.MatchSearch(ctx, "Bac", pets.Page{Number: 1, Size: 20})
	require.NoError(t, err)
	assert.Empty(t, items)

	// metacaracteres se buscan literales
	for _, term := range []string{"%", "_", ".*", "("} {
		items, _, err = repo.MatchSearch(ctx, term, pets.Page{Number: 1, Size: 20})
		require.NoError(t, err, term)
		assert.Empty(t, items, term)
	}

	items, total, err = repo.MatchSearch(ctx, "", pets.Page{Number: 1, Size: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []string{"Norman", "Rex"}, names(items))
}

func assertSamePet(t *testing.T, want, got pets.Pet) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Birthday, got.Birthday)
	assert.Equal(t, want.Species, got.Species)
	assert.Equal(t, want.FavoriteFood, got.FavoriteFood)
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.Price, got.Price)
	assert.Equal(t, want.PicURL, got.PicURL)
	assert.Equal(t, want.PicURLSq, got.PicURLSq)
	assert.Equal(t, want.AvatarURL, got.AvatarURL)
	assert.Equal(t, want.AvatarStatus, got.AvatarStatus)
	assert.WithinDuration(t, want.CreatedAt, got.CreatedAt, time.Millisecond)
	assert.WithinDuration(t, want.UpdatedAt, got.UpdatedAt, time.Millisecond)
}

func names(items []pets.Pet) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Name)
	}
	return out
}
