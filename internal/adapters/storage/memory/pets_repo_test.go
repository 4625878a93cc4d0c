package memory

import (
	"testing"

	"pet-store/internal/adapters/storage/storagetest"
	"pet-store/internal/domain/pets"
)

func TestPetRepo_Contract(t *testing.T) {
	storagetest.Run(t, func(*testing.T) pets.Repository { return NewPetRepo() })
}
