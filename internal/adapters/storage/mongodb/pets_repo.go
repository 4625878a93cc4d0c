package mongodb

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"pet-store/internal/domain/pets"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound = pets.ErrNotFound
)

const collectionName = "pets"

// petDocument es la forma en la colección; los nombres siguen el JSON público.
type petDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Birthday     string    `bson:"birthday"`
	Species      string    `bson:"species"`
	FavoriteFood string    `bson:"favoriteFood"`
	Description  string    `bson:"description"`
	PriceCents   int64     `bson:"priceCents"`
	PicURL       string    `bson:"picUrl"`
	PicURLSq     string    `bson:"picUrlSq"`
	AvatarURL    string    `bson:"avatarUrl"`
	AvatarStatus string    `bson:"avatarStatus"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`

	Score float64 `bson:"score,omitempty"` // solo en búsquedas $text
}

type PetsRepo struct {
	coll *mongo.Collection
}

func NewPetsRepo(db *mongo.Database) *PetsRepo {
	return &PetsRepo{coll: db.Collection(collectionName)}
}

// EnsureIndexes crea el índice de texto (4 campos) y el de orden por defecto.
func (r *PetsRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "species", Value: "text"},
				{Key: "favoriteFood", Value: "text"},
				{Key: "description", Value: "text"},
			},
			Options: options.Index().SetName("pets_text"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("pets_created"),
		},
	})
	return err
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.coll.InsertOne(ctx, toDocument(p))
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, toDocument(p))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	var doc petDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return pets.Pet{}, ErrNotFound
	}
	if err != nil {
		return pets.Pet{}, err
	}
	return fromDocument(doc), nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) List(ctx context.Context, pg pets.Page) ([]pets.Pet, int, error) {
	return r.find(ctx, bson.M{}, pg, defaultOrder(), nil)
}

func (r *PetsRepo) TextSearch(ctx context.Context, term string, pg pets.Page) ([]pets.Pet, int, error) {
	if strings.TrimSpace(term) == "" {
		return []pets.Pet{}, 0, nil
	}
	score := bson.M{"score": bson.M{"$meta": "textScore"}}
	return r.find(ctx,
		bson.M{"$text": bson.M{"$search": term}},
		pg,
		bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}},
		score,
	)
}

func (r *PetsRepo) MatchSearch(ctx context.Context, term string, pg pets.Page) ([]pets.Pet, int, error) {
	return r.find(ctx, matchFilter(term), pg, defaultOrder(), nil)
}

func (r *PetsRepo) find(ctx context.Context, filter any, pg pets.Page, sort bson.D, projection any) ([]pets.Pet, int, error) {
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64(pg.Offset())).
		SetLimit(int64(pg.Size))
	if projection != nil {
		opts.SetProjection(projection)
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	var docs []petDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	out := make([]pets.Pet, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromDocument(d))
	}
	return out, int(total), nil
}

// matchFilter: subcadena case-insensitive en name o species. El término se
// escapa para que se busque literal.
func matchFilter(term string) bson.M {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"species": re},
	}}
}

func defaultOrder() bson.D {
	return bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}
}

func toDocument(p pets.Pet) petDocument {
	return petDocument{
		ID:           p.ID,
		Name:         p.Name,
		Birthday:     p.Birthday,
		Species:      p.Species,
		FavoriteFood: p.FavoriteFood,
		Description:  p.Description,
		PriceCents:   p.Price.Minor(),
		PicURL:       p.PicURL,
		PicURLSq:     p.PicURLSq,
		AvatarURL:    p.AvatarURL,
		AvatarStatus: string(p.AvatarStatus),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func fromDocument(d petDocument) pets.Pet {
	return pets.Pet{
		ID:           d.ID,
		Name:         d.Name,
		Birthday:     d.Birthday,
		Species:      d.Species,
		FavoriteFood: d.FavoriteFood,
		Description:  d.Description,
		Price:        pets.MoneyFromMinor(d.PriceCents),
		PicURL:       d.PicURL,
		PicURLSq:     d.PicURLSq,
		AvatarURL:    d.AvatarURL,
		AvatarStatus: pets.AvatarStatus(d.AvatarStatus),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
