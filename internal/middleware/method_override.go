package middleware

import (
	"mime"
	"net/http"
	"strings"
)

const MethodOverrideParam = "_method"

var overridable = map[string]bool{
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// MethodOverride permite que los formularios HTML (que solo hacen GET/POST)
// lleguen como PUT/PATCH/DELETE. Se lee _method del query string o de un
// body urlencoded. Tiene que ir antes del routing de chi.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if m := overrideMethod(r); overridable[m] {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideMethod(r *http.Request) string {
	if m := r.URL.Query().Get(MethodOverrideParam); m != "" {
		return strings.ToUpper(strings.TrimSpace(m))
	}

	// multipart no se toca acá: parsearlo consumiría el archivo antes del handler.
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "application/x-www-form-urlencoded" {
		return ""
	}
	if err := r.ParseForm(); err != nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(r.PostForm.Get(MethodOverrideParam)))
}
