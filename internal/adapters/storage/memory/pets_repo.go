package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"unicode"

	"pet-store/internal/domain/pets"
)

var (
	ErrNotFound = pets.ErrNotFound
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
	seq  map[string]int // orden de inserción, hace de "orden por defecto" del store
	next int
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
		seq:  make(map[string]int),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = p
	r.seq[p.ID] = r.next
	r.next++
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	delete(r.seq, id)
	return nil
}

func (r *petRepo) List(ctx context.Context, pg pets.Page) ([]pets.Pet, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.inOrder(func(pets.Pet) bool { return true })
	return window(all, pg), len(all), nil
}

// TextSearch aproxima un índice de texto: match por palabra completa,
// score = cantidad de coincidencias entre los términos y los cuatro campos.
func (r *petRepo) TextSearch(ctx context.Context, term string, pg pets.Page) ([]pets.Pet, int, error) {
	terms := words(term)
	if len(terms) == 0 {
		return []pets.Pet{}, 0, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	scores := map[string]int{}
	matched := r.inOrder(func(p pets.Pet) bool {
		n := textScore(terms, p)
		if n == 0 {
			return false
		}
		scores[p.ID] = n
		return true
	})

	// estable: a igual score queda el orden de inserción
	sort.SliceStable(matched, func(i, j int) bool {
		return scores[matched[i].ID] > scores[matched[j].ID]
	})

	return window(matched, pg), len(matched), nil
}

func (r *petRepo) MatchSearch(ctx context.Context, term string, pg pets.Page) ([]pets.Pet, int, error) {
	needle := strings.ToLower(term)

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.inOrder(func(p pets.Pet) bool {
		return strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Species), needle)
	})
	return window(matched, pg), len(matched), nil
}

func (r *petRepo) inOrder(keep func(pets.Pet) bool) []pets.Pet {
	out := make([]pets.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return r.seq[out[i].ID] < r.seq[out[j].ID]
	})
	return out
}

func window(all []pets.Pet, pg pets.Page) []pets.Pet {
	from := pg.Offset()
	if from >= len(all) {
		return []pets.Pet{}
	}
	to := len(all)
	if pg.Size > 0 && from+pg.Size < to {
		to = from + pg.Size
	}
	return all[from:to]
}

func textScore(terms []string, p pets.Pet) int {
	n := 0
	for _, field := range []string{p.Name, p.Species, p.FavoriteFood, p.Description} {
		for _, w := range words(field) {
			for _, t := range terms {
				if w == t {
					n++
				}
			}
		}
	}
	return n
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
