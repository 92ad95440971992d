package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"assessor_gateway/config"
	"assessor_gateway/models"
	"assessor_gateway/scraper"
)

// propertyLookup and quoteSubmitter are the two collaborators the server
// fronts; the concrete services live in the services package.
type propertyLookup interface {
	Lookup(ctx context.Context, requestID string, query models.PropertyQuery) (models.PropertyRecord, error)
}

type quoteSubmitter interface {
	Submit(ctx context.Context, quote *models.QuoteRequest) error
}

type sourceStatus interface {
	LastSourceCheck() (*models.SourceCheck, error)
}

type Server struct {
	cfg     *config.Config
	lookups propertyLookup
	quotes  quoteSubmitter
	status  sourceStatus
}

func New(cfg *config.Config, lookups propertyLookup, quotes quoteSubmitter, status sourceStatus) *Server {
	return &Server{cfg: cfg, lookups: lookups, quotes: quotes, status: status}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/property/info", s.handlePropertyInfo)
	mux.HandleFunc("/api/quote", s.handleQuote)
	mux.HandleFunc("/health", s.handleHealth)
	return s.cors(mux)
}

func (s *Server) handlePropertyInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	var query models.PropertyQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "")
		return
	}

	// Validation happens before any browser session is opened.
	if missing := missingQueryField(&query); missing != "" {
		writeError(w, http.StatusBadRequest, "missing required field: "+missing, "")
		return
	}

	requestID := uuid.NewString()
	log.Printf("[%s] Property lookup: %s / %s %s",
		requestID, query.Region, query.AddressNumber, query.StreetName)

	record, err := s.lookups.Lookup(r.Context(), requestID, query)
	if err != nil {
		log.Printf("[%s] Lookup failed: %v", requestID, err)
		writeError(w, http.StatusInternalServerError, lookupErrorMessage(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    record,
	})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	var quote models.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "")
		return
	}

	switch {
	case strings.TrimSpace(quote.Name) == "":
		writeError(w, http.StatusBadRequest, "missing required field: name", "")
		return
	case strings.TrimSpace(quote.Email) == "":
		writeError(w, http.StatusBadRequest, "missing required field: email", "")
		return
	case strings.TrimSpace(quote.Address) == "":
		writeError(w, http.StatusBadRequest, "missing required field: address", "")
		return
	}

	if err := s.quotes.Submit(r.Context(), &quote); err != nil {
		log.Printf("Quote submission failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to submit quote", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok"}
	if s.status != nil {
		if check, err := s.status.LastSourceCheck(); err == nil && check != nil {
			resp["source"] = check
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func missingQueryField(q *models.PropertyQuery) string {
	switch {
	case strings.TrimSpace(q.Region) == "":
		return "city"
	case strings.TrimSpace(q.StreetName) == "":
		return "streetName"
	case strings.TrimSpace(q.AddressNumber) == "":
		return "addressNumber"
	}
	return ""
}

func lookupErrorMessage(err error) string {
	var resolutionErr *scraper.ResolutionError
	var optionErr *scraper.OptionNotFoundError
	var navErr *scraper.NavigationTimeoutError

	switch {
	case errors.As(err, &resolutionErr):
		return "could not identify the search form controls"
	case errors.As(err, &optionErr):
		return "no matching " + optionErr.Role + " option on the assessor site"
	case errors.As(err, &navErr):
		return "assessor site did not respond in time"
	}
	return "property lookup failed"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	body := map[string]string{"error": message}
	if details != "" {
		body["details"] = details
	}
	writeJSON(w, status, body)
}
