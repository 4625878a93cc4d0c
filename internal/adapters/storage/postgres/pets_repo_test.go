package postgres

import (
	"context"
	"os"
	"testing"

	"pet-store/internal/adapters/storage/storagetest"
	"pet-store/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\tmp`, escapeLike(`c:\tmp`))
	assert.Equal(t, "Spider", escapeLike("Spider"))
}

// Corre solo con PETSTORE_TEST_DSN apuntando a una base descartable.
func TestPetsRepo_Contract(t *testing.T) {
	dsn := os.Getenv("PETSTORE_TEST_DSN")
	if dsn == "" {
		t.Skip("PETSTORE_TEST_DSN not set")
	}

	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(context.Background(), db))

	storagetest.Run(t, func(t *testing.T) pets.Repository {
		_, err := db.Exec(`TRUNCATE pets`)
		require.NoError(t, err)
		return NewPetsRepo(db)
	})
}
