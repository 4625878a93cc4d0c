package pets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pet-store/internal/platform/logger"
	"pet-store/internal/views"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 10 << 20

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Get("/", indexPetsHandler(svc, log))
	r.Get("/search", searchPetsHandler(svc, log))

	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", indexPetsHandler(svc, log))
		pr.Get("/new", newPetFormHandler())
		pr.Post("/", createPetHandler(svc, log))

		pr.Get("/{petID}", getPetHandler(svc, log))
		pr.Get("/{petID}/edit", editPetFormHandler(svc, log))
		pr.Put("/{petID}", updatePetHandler(svc, log))
		pr.Patch("/{petID}", updatePetHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))

		pr.Post("/{petID}/avatar", uploadAvatarHandler(svc, log))
		pr.Post("/{petID}/purchase", purchasePetHandler(svc, log))
	})
}

// createPetRequest es el cuerpo JSON para crear una mascota.
type createPetRequest struct {
	Name         string `json:"name"`
	Birthday     string `json:"birthday"` // YYYY-MM-DD
	Species      string `json:"species"`
	FavoriteFood string `json:"favoriteFood"`
	Description  string `json:"description"` // mínimo 40 caracteres
	Price        Money  `json:"price" swaggertype:"number"`
	PicURL       string `json:"picUrl"`
	PicURLSq     string `json:"picUrlSq"`
	AvatarURL    string `json:"avatarUrl"`
}

// updatePetRequest: punteros para update parcial real, nil = no tocar.
type updatePetRequest struct {
	Name         *string `json:"name"`
	Birthday     *string `json:"birthday"`
	Species      *string `json:"species"`
	FavoriteFood *string `json:"favoriteFood"`
	Description  *string `json:"description"`
	Price        *Money  `json:"price" swaggertype:"number"`
	PicURL       *string `json:"picUrl"`
	PicURLSq     *string `json:"picUrlSq"`
	AvatarURL    *string `json:"avatarUrl"`
}

// purchaseRequest usa los nombres de campo de Stripe Checkout.
type purchaseRequest struct {
	PetID *string `json:"petId"`
	Token string  `json:"stripeToken"`
	Email string  `json:"stripeEmail"`
}

// petResponse representa una mascota devuelta por la API.
type petResponse struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Birthday     string       `json:"birthday"`
	Species      string       `json:"species"`
	FavoriteFood string       `json:"favoriteFood"`
	Description  string       `json:"description"`
	Price        Money        `json:"price" swaggertype:"number"`
	PicURL       string       `json:"picUrl,omitempty"`
	PicURLSq     string       `json:"picUrlSq,omitempty"`
	AvatarURL    string       `json:"avatarUrl,omitempty"`
	AvatarStatus AvatarStatus `json:"avatarStatus"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

type petEnvelope struct {
	Pet petResponse `json:"pet"`
}

// uploadFailedResponse: el registro existe aunque el avatar no se haya subido.
type uploadFailedResponse struct {
	Error string      `json:"error"`
	Pet   petResponse `json:"pet"`
}

type petsPageResponse struct {
	Pets        []petResponse `json:"pets"`
	PagesCount  int           `json:"pagesCount"`
	CurrentPage int           `json:"currentPage"`
	Term        string        `json:"term,omitempty"`
	Fallback    bool          `json:"fallback,omitempty"`
}

type receiptResponse struct {
	PetID    string `json:"petId"`
	ChargeID string `json:"chargeId"`
	Amount   Money  `json:"amount" swaggertype:"number"`
	Currency string `json:"currency"`
	Email    string `json:"email,omitempty"`
	Notified bool   `json:"notified"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors map[string]string `json:"errors"`
}

// pageData es el modelo común de las vistas HTML.
type pageData struct {
	Term        string
	Pets        []petResponse
	PagesCount  int
	CurrentPage int
	Pet         petResponse
	Purchase    string

	// CheckoutKey es la publishable key de Stripe; vacía => token a mano.
	CheckoutKey string
	Currency    string
}

// indexPetsHandler godoc
// @Summary Listar mascotas
// @Description Índice paginado (3 por página) en orden de creación. JSON si el cliente lo pide, HTML si no.
// @Tags pets
// @Produce json,html
// @Param page query int false "Página (1-based)"
// @Success 200 {object} petsPageResponse
// @Failure 400 {object} errorResponse
// @Router / [get]
func indexPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.List(r.Context(), pageParam(r))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writePage(w, r, log, res)
	}
}

// searchPetsHandler godoc
// @Summary Buscar mascotas
// @Description Búsqueda full-text sobre name, species, favoriteFood y description ordenada por relevancia. Si no hay resultados, cae a una búsqueda por subcadena solo en name y species. Páginas de 20.
// @Tags pets
// @Produce json,html
// @Param term query string false "Término de búsqueda"
// @Param page query int false "Página (1-based)"
// @Success 200 {object} petsPageResponse
// @Failure 400 {object} errorResponse
// @Router /search [get]
func searchPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Search(r.Context(), r.URL.Query().Get("term"), pageParam(r))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writePage(w, r, log, res)
	}
}

func newPetFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = views.Render(w, http.StatusOK, "pets-new", pageData{})
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea el registro. Con multipart/form-data acepta un archivo `avatar`: primero se crea el registro y luego se suben las variantes; si la subida falla se responde 400 con el registro tal como quedó (avatarStatus=failed).
// @Tags pets
// @Accept json,mpfd,x-www-form-urlencoded
// @Produce json
// @Param payload body createPetRequest false "Datos de la mascota"
// @Param avatar formData file false "Imagen de avatar"
// @Success 200 {object} petEnvelope
// @Failure 400 {object} validationResponse
// @Failure 400 {object} uploadFailedResponse
// @Router /pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			in        CreateInput
			localPath string
			err       error
		)

		switch mediaType(r.Header.Get("Content-Type")) {
		case "multipart/form-data":
			r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
			if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
				return
			}
			in, err = createInputFromForm(r.PostForm)
			if err == nil {
				localPath, err = saveAvatarFile(r)
			}
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form"})
				return
			}
			in, err = createInputFromForm(r.PostForm)
		default:
			var req createPetRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
				return
			}
			in = CreateInput(req)
		}
		if localPath != "" {
			// el uploader ya borra el original; esto cubre los caminos de error
			defer os.Remove(localPath)
		}
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		p, err := svc.CreateWithAvatar(r.Context(), in, localPath)
		if err != nil {
			if p.ID != "" && (errors.Is(err, ErrUpload) || errors.Is(err, ErrVariantMismatch)) {
				writeJSON(w, http.StatusBadRequest, uploadFailedResponse{
					Error: err.Error(),
					Pet:   toPetResponse(p),
				})
				return
			}
			writeError(w, r, log, err)
			return
		}

		if isForm(r) && !wantsJSON(r) {
			http.Redirect(w, r, "/pets/"+p.ID, http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusOK, petEnvelope{Pet: toPetResponse(p)})
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Tags pets
// @Produce json,html
// @Param petID path string true "ID de la mascota"
// @Param purchase query string false "Resultado de compra (ok|failed), solo HTML"
// @Success 200 {object} petResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, toPetResponse(p))
			return
		}
		renderHTML(w, log, "pets-show", pageData{
			Pet:         toPetResponse(p),
			Purchase:    r.URL.Query().Get("purchase"),
			CheckoutKey: svc.checkoutKey,
			Currency:    svc.currency,
		})
	}
}

func editPetFormHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, toPetResponse(p))
			return
		}
		renderHTML(w, log, "pets-edit", pageData{Pet: toPetResponse(p)})
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Update parcial sobre una lista blanca de campos; campos desconocidos => 400. JSON devuelve el registro, formularios redirigen a /pets/{petID}.
// @Tags pets
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a cambiar"
// @Success 200 {object} petResponse
// @Success 303 "redirect a /pets/{petID}"
// @Failure 400 {object} validationResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		var (
			in  UpdateInput
			err error
		)
		switch mediaType(r.Header.Get("Content-Type")) {
		case "application/x-www-form-urlencoded", "multipart/form-data":
			if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form"})
				return
			}
			in, err = updateInputFromForm(r.PostForm)
		default:
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()

			var req updatePetRequest
			if derr := dec.Decode(&req); derr != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json: " + derr.Error()})
				return
			}
			in = UpdateInput(req)
		}
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		p, err := svc.Update(r.Context(), petID, in)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, toPetResponse(p))
			return
		}
		http.Redirect(w, r, "/pets/"+p.ID, http.StatusSeeOther)
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Tags pets
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Success 303 "redirect a /"
// @Failure 404 {object} errorResponse
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writeError(w, r, log, err)
			return
		}

		if wantsJSON(r) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// uploadAvatarHandler godoc
// @Summary Subir (o reintentar) avatar
// @Description Sube el archivo `avatar`, deriva la URL base de las variantes y la persiste en el registro.
// @Tags pets
// @Accept mpfd
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param avatar formData file true "Imagen de avatar"
// @Success 200 {object} petEnvelope
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID}/avatar [post]
func uploadAvatarHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
			return
		}

		localPath, err := saveAvatarFile(r)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		if localPath == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "avatar file required"})
			return
		}
		defer os.Remove(localPath)

		p, err := svc.ReconcileAvatar(r.Context(), chi.URLParam(r, "petID"), localPath)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, petEnvelope{Pet: toPetResponse(p)})
			return
		}
		http.Redirect(w, r, "/pets/"+p.ID, http.StatusSeeOther)
	}
}

// purchasePetHandler godoc
// @Summary Comprar mascota
// @Description Cobra price*100 (unidades menores) con el token del cliente y notifica al comprador. Un único intento, sin reintentos. Formularios HTML siempre redirigen a /pets/{petID}?purchase=ok|failed.
// @Tags pets
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body purchaseRequest true "Token y email del comprador"
// @Success 200 {object} receiptResponse
// @Failure 400 {object} errorResponse
// @Failure 402 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /pets/{petID}/purchase [post]
func purchasePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pathID := chi.URLParam(r, "petID")

		var req purchaseRequest
		if mediaType(r.Header.Get("Content-Type")) == "application/json" {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
				return
			}
		} else {
			if err := r.ParseForm(); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form"})
				return
			}
			if v, ok := r.PostForm["petId"]; ok && len(v) > 0 {
				req.PetID = &v[0]
			}
			req.Token = r.PostForm.Get("stripeToken")
			req.Email = r.PostForm.Get("stripeEmail")
		}

		receipt, err := svc.Purchase(r.Context(), PurchaseInput{
			PathID: pathID,
			BodyID: req.PetID,
			Token:  req.Token,
			Email:  req.Email,
		})

		if !wantsJSON(r) {
			target := receipt.PetID
			if target == "" {
				target = pathID
			}
			outcome := "ok"
			if err != nil {
				outcome = "failed"
				log.Warn("purchase failed", map[string]any{"pet_id": target, "err": err})
			}
			http.Redirect(w, r, "/pets/"+url.PathEscape(target)+"?purchase="+outcome, http.StatusSeeOther)
			return
		}

		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, receiptResponse{
			PetID:    receipt.PetID,
			ChargeID: receipt.ChargeID,
			Amount:   receipt.Amount,
			Currency: receipt.Currency,
			Email:    receipt.Email,
			Notified: receipt.Notified,
		})
	}
}

func createInputFromForm(form url.Values) (CreateInput, error) {
	price, err := ParseMoney(form.Get("price"))
	if err != nil {
		return CreateInput{}, &ValidationError{Fields: map[string]string{"price": "must be a decimal amount"}}
	}
	return CreateInput{
		Name:         form.Get("name"),
		Birthday:     form.Get("birthday"),
		Species:      form.Get("species"),
		FavoriteFood: form.Get("favoriteFood"),
		Description:  form.Get("description"),
		Price:        price,
		PicURL:       form.Get("picUrl"),
		PicURLSq:     form.Get("picUrlSq"),
		AvatarURL:    form.Get("avatarUrl"),
	}, nil
}

// updateInputFromForm solo toma los campos de la lista blanca que vinieron en el form.
func updateInputFromForm(form url.Values) (UpdateInput, error) {
	field := func(key string) *string {
		v, ok := form[key]
		if !ok || len(v) == 0 {
			return nil
		}
		s := v[0]
		return &s
	}

	in := UpdateInput{
		Name:         field("name"),
		Birthday:     field("birthday"),
		Species:      field("species"),
		FavoriteFood: field("favoriteFood"),
		Description:  field("description"),
		PicURL:       field("picUrl"),
		PicURLSq:     field("picUrlSq"),
		AvatarURL:    field("avatarUrl"),
	}
	if raw := field("price"); raw != nil {
		price, err := ParseMoney(*raw)
		if err != nil {
			return UpdateInput{}, &ValidationError{Fields: map[string]string{"price": "must be a decimal amount"}}
		}
		in.Price = &price
	}
	return in, nil
}

// saveAvatarFile copia el archivo "avatar" del form a un temporal y devuelve su path.
// "" si no vino archivo.
func saveAvatarFile(r *http.Request) (string, error) {
	f, hdr, err := r.FormFile("avatar")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: avatar: %v", ErrInvalidInput, err)
	}
	defer f.Close()

	tmp, err := os.CreateTemp("", "avatar-*"+strings.ToLower(filepath.Ext(hdr.Filename)))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, f); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:           p.ID,
		Name:         p.Name,
		Birthday:     p.Birthday,
		Species:      p.Species,
		FavoriteFood: p.FavoriteFood,
		Description:  p.Description,
		Price:        p.Price,
		PicURL:       p.PicURL,
		PicURLSq:     p.PicURLSq,
		AvatarURL:    p.AvatarURL,
		AvatarStatus: p.AvatarStatus,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func writePage(w http.ResponseWriter, r *http.Request, log logger.Logger, res ResultPage) {
	out := make([]petResponse, 0, len(res.Items))
	for _, p := range res.Items {
		out = append(out, toPetResponse(p))
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, petsPageResponse{
			Pets:        out,
			PagesCount:  res.PageCount,
			CurrentPage: res.CurrentPage,
			Term:        res.Term,
			Fallback:    res.Fallback,
		})
		return
	}
	renderHTML(w, log, "pets-index", pageData{
		Term:        res.Term,
		Pets:        out,
		PagesCount:  res.PageCount,
		CurrentPage: res.CurrentPage,
	})
}

// writeError traduce errores de dominio a status HTTP. Ningún error se descarta.
func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, validationResponse{Errors: verr.Fields})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrUpload),
		errors.Is(err, ErrVariantMismatch),
		errors.Is(err, ErrQuery):
		status = http.StatusBadRequest
	case errors.Is(err, ErrPayment):
		status = http.StatusPaymentRequired
	case errors.Is(err, ErrPaymentUnavailable):
		status = http.StatusServiceUnavailable
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed", map[string]any{"method": r.Method, "path": r.URL.Path, "err": err})
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func renderHTML(w http.ResponseWriter, log logger.Logger, name string, data pageData) {
	if err := views.Render(w, http.StatusOK, name, data); err != nil {
		log.Error("render failed", map[string]any{"view": name, "err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// wantsJSON replica la negociación original: JSON si el cliente lo declara
// en Content-Type o en Accept.
func wantsJSON(r *http.Request) bool {
	if mediaType(r.Header.Get("Content-Type")) == "application/json" {
		return true
	}
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		if mediaType(part) == "application/json" {
			return true
		}
	}
	return false
}

func isForm(r *http.Request) bool {
	switch mediaType(r.Header.Get("Content-Type")) {
	case "multipart/form-data", "application/x-www-form-urlencoded":
		return true
	}
	return false
}

func mediaType(v string) string {
	mt, _, err := mime.ParseMediaType(strings.TrimSpace(v))
	if err != nil {
		return ""
	}
	return mt
}

func pageParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
