package adapthttp

import (
	"net/http"

	"github.com/rs/cors"

	"nutricalc/internal/app"
)

// Server is the driving HTTP adapter that routes requests to the
// calculator service.
type Server struct {
	calc        *app.CalculatorService
	corsOrigins []string
}

// New creates a Server wired to the calculator service. corsOrigins lists
// the browser origins allowed to call the API; "*" allows any.
func New(calc *app.CalculatorService, corsOrigins []string) *Server {
	return &Server{calc: calc, corsOrigins: corsOrigins}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/calculations", s.handleCalculations)
	api.HandleFunc("/calculations/recent", s.handleCalculationsRecent)
	api.HandleFunc("/calculation", s.handleCalculationByID)

	api.HandleFunc("/formulas", s.handleFormulas)
	api.HandleFunc("/config", s.handleConfig)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	c := cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.loggingMiddleware(withNoCache(root)))
}
