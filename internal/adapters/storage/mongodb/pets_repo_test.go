package mongodb

import (
	"context"
	"os"
	"testing"

	"pet-store/internal/adapters/storage/storagetest"
	"pet-store/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMatchFilter_QuotesTerm(t *testing.T) {
	f := matchFilter("a.b(")
	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	name := or[0].(bson.M)["name"].(primitive.Regex)
	assert.Equal(t, `a\.b\(`, name.Pattern)
	assert.Equal(t, "i", name.Options)
}

func TestDocumentRoundTrip(t *testing.T) {
	p := storagetest.Norman(0)
	p.AvatarStatus = pets.AvatarReady
	p.AvatarURL = "https://cdn.example.com/pets/avatar/" + p.ID

	got := fromDocument(toDocument(p))
	assert.Equal(t, p, got)
}

// Corre solo con PETSTORE_TEST_MONGO_URI (usa una base propia y la borra).
func TestPetsRepo_Contract(t *testing.T) {
	uri := os.Getenv("PETSTORE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PETSTORE_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, uri)
	require.NoError(t, err)

	db := client.Database("pet-store-test")
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	storagetest.Run(t, func(t *testing.T) pets.Repository {
		_, err := db.Collection(collectionName).DeleteMany(ctx, bson.M{})
		require.NoError(t, err)

		repo := NewPetsRepo(db)
		require.NoError(t, repo.EnsureIndexes(ctx))
		return repo
	})
}
