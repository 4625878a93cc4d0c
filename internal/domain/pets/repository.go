package pets

import "context"

// Repository es el record store. Implementaciones: memory, postgres, mongo.
// GetByID/Update/Delete devuelven ErrNotFound si el id no existe.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	Delete(ctx context.Context, id string) error

	// List devuelve la página pedida y el total, en orden de creación.
	List(ctx context.Context, pg Page) ([]Pet, int, error)

	// TextSearch: búsqueda full-text sobre name, species, favoriteFood y description,
	// ordenada por relevancia descendente.
	TextSearch(ctx context.Context, term string, pg Page) ([]Pet, int, error)

	// MatchSearch: subcadena case-insensitive sobre name o species, orden por defecto del store.
	MatchSearch(ctx context.Context, term string, pg Page) ([]Pet, int, error)
}
