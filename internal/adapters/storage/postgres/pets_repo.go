package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-store/internal/domain/pets"
)

const petColumns = `
	id,
	name, birthday, species, favorite_food, description,
	price_cents,
	pic_url, pic_url_sq, avatar_url, avatar_status,
	created_at, updated_at`

// orTSQuery convierte el término en un OR de lexemas, como $text en Mongo.
const orTSQuery = `replace(plainto_tsquery('english', $1)::text, '&', '|')::tsquery`

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		p.ID,
		p.Name,
		p.Birthday,
		p.Species,
		p.FavoriteFood,
		p.Description,
		p.Price.Minor(),
		p.PicURL,
		p.PicURLSq,
		p.AvatarURL,
		string(p.AvatarStatus),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			birthday = $3,
			species = $4,
			favorite_food = $5,
			description = $6,
			price_cents = $7,
			pic_url = $8,
			pic_url_sq = $9,
			avatar_url = $10,
			avatar_status = $11,
			updated_at = $12
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Birthday,
		p.Species,
		p.FavoriteFood,
		p.Description,
		p.Price.Minor(),
		p.PicURL,
		p.PicURLSq,
		p.AvatarURL,
		string(p.AvatarStatus),
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) List(ctx context.Context, pg pets.Page) ([]pets.Pet, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM pets`).Scan(&total); err != nil {
		return nil, 0, err
	}

	items, err := r.query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		ORDER BY seq ASC
		LIMIT $1 OFFSET $2
	`, pg.Size, pg.Offset())
	return items, total, err
}

func (r *PetsRepo) TextSearch(ctx context.Context, term string, pg pets.Page) ([]pets.Pet, int, error) {
	if strings.TrimSpace(term) == "" {
		return []pets.Pet{}, 0, nil
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `
		SELECT count(*) FROM pets WHERE search_vector @@ `+orTSQuery,
		term,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	items, err := r.query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE search_vector @@ `+orTSQuery+`
		ORDER BY ts_rank(search_vector, `+orTSQuery+`) DESC, seq ASC
		LIMIT $2 OFFSET $3
	`, term, pg.Size, pg.Offset())
	return items, total, err
}

// MatchSearch: ILIKE sobre name/species con el término escapado (literal).
func (r *PetsRepo) MatchSearch(ctx context.Context, term string, pg pets.Page) ([]pets.Pet, int, error) {
	pattern := "%" + escapeLike(term) + "%"

	var total int
	if err := r.db.QueryRowContext(ctx, `
		SELECT count(*) FROM pets WHERE name ILIKE $1 OR species ILIKE $1`,
		pattern,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	items, err := r.query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE name ILIKE $1 OR species ILIKE $1
		ORDER BY seq ASC
		LIMIT $2 OFFSET $3
	`, pattern, pg.Size, pg.Offset())
	return items, total, err
}

func (r *PetsRepo) query(ctx context.Context, q string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var p pets.Pet
	var cents int64
	var status string
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Birthday,
		&p.Species,
		&p.FavoriteFood,
		&p.Description,
		&cents,
		&p.PicURL,
		&p.PicURLSq,
		&p.AvatarURL,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Price = pets.MoneyFromMinor(cents)
	p.AvatarStatus = pets.AvatarStatus(status)
	return p, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
