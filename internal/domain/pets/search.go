package pets

import (
	"context"
	"strings"
)

// Search resuelve un término en dos pasos: full-text rankeado y, si no hay
// resultados, subcadena sobre name/species solamente. La forma de respuesta es
// la misma en ambos casos; Fallback indica cuál respondió.
func (s *Service) Search(ctx context.Context, term string, page int) (ResultPage, error) {
	term = strings.TrimSpace(term)
	pg := Page{Number: max(page, 1), Size: SearchPageSize}

	items, total, err := s.repo.TextSearch(ctx, term, pg)
	if err != nil {
		return ResultPage{}, queryErr(err)
	}
	if len(items) > 0 {
		out := newResultPage(items, total, pg)
		out.Term = term
		return out, nil
	}

	items, total, err = s.repo.MatchSearch(ctx, term, pg)
	if err != nil {
		return ResultPage{}, queryErr(err)
	}

	s.log.Debug("text search empty, used substring fallback", map[string]any{
		"term":  term,
		"total": total,
	})

	out := newResultPage(items, total, pg)
	out.Term = term
	out.Fallback = true
	return out, nil
}
