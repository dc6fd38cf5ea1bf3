package calculator

import (
	"github.com/go-chi/chi/v5"

	"architect-calculators/internal/calc"
)

// RegisterRoutes mounts every calculator under /api, one POST route per
// calculator named after it, plus the schema listing.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/calculators", h.List)

		for _, c := range calc.All() {
			r.Post("/"+c.Name, h.Evaluate(c))
		}
	})
}
