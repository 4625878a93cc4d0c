package pets

import "time"

// AvatarStatus expone en qué punto de la reconciliación del avatar está el registro.
type AvatarStatus string

const (
	AvatarNone    AvatarStatus = "none"
	AvatarPending AvatarStatus = "pending"
	AvatarReady   AvatarStatus = "ready"
	AvatarFailed  AvatarStatus = "failed"
)

// Pet representa un anuncio de mascota en venta/adopción.
type Pet struct {
	ID string

	Name         string
	Birthday     string // fecha como texto, tal como la envía el cliente
	Species      string
	FavoriteFood string
	Description  string

	Price Money

	PicURL       string // variante "standard"
	PicURLSq     string // variante "square"
	AvatarURL    string // URL base canónica (sin sufijo de variante)
	AvatarStatus AvatarStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Page es la ventana de paginación pedida al store.
type Page struct {
	Number int // 1-based
	Size   int
}

func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// ResultPage es la forma uniforme que devuelven listados y búsquedas.
type ResultPage struct {
	Items       []Pet
	Total       int
	PageCount   int
	CurrentPage int

	Term     string
	Fallback bool // true si respondió la búsqueda por subcadena
}

func newResultPage(items []Pet, total int, pg Page) ResultPage {
	if items == nil {
		items = []Pet{}
	}
	pages := 1
	if pg.Size > 0 && total > 0 {
		pages = (total + pg.Size - 1) / pg.Size
	}
	return ResultPage{
		Items:       items,
		Total:       total,
		PageCount:   pages,
		CurrentPage: pg.Number,
	}
}
