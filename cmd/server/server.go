package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Simplici0/profitcalc/internal/logger"
	"github.com/Simplici0/profitcalc/internal/money"
	"github.com/Simplici0/profitcalc/internal/pricing"
	"github.com/Simplici0/profitcalc/internal/quote"
	"github.com/Simplici0/profitcalc/web"
)

var pages = []string{"calculator.html", "quotes.html", "quote_detail.html"}

type serverConfig struct {
	Log          zerolog.Logger
	DB           *sql.DB
	Currency     money.Currency
	CurrencyCode string
	// Defaults prefill the calculator when it is opened without any input.
	Defaults pricing.Input
}

type server struct {
	log          zerolog.Logger
	db           *sql.DB
	quotes       *quote.Store
	currency     money.Currency
	currencyCode string
	defaults     pricing.Input
	templates    map[string]*template.Template
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

func newServer(cfg serverConfig) (*server, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(web.Templates, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}

	return &server{
		log:          cfg.Log,
		db:           cfg.DB,
		quotes:       quote.NewStore(cfg.DB),
		currency:     cfg.Currency,
		currencyCode: cfg.CurrencyCode,
		defaults:     cfg.Defaults,
		templates:    templates,
	}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logger.RequestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	r.Get("/", s.handleCalculator)
	r.Get("/healthz", s.handleHealth)
	r.Post("/api/calculate", s.handleAPICalculate)

	r.Route("/quotes", func(r chi.Router) {
		r.Get("/", s.handleQuotesList)
		r.Post("/", s.handleQuoteCreate)
		r.Get("/export.xlsx", s.handleQuotesXLSX)
		r.Get("/{id}", s.handleQuoteDetail)
		r.Get("/{id}/text", s.handleQuoteText)
		r.Get("/{id}/pdf", s.handleQuotePDF)
		r.Post("/{id}/delete", s.handleQuoteDelete)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("health check failed")
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := s.templates[page]
	if !ok {
		s.log.Error().Str("page", page).Msg("unknown template")
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		s.log.Error().Err(err).Str("page", page).Msg("failed to render template")
	}
}

// writeJSON encodes v before any header is sent, so an encoding failure can
// still become a 500.
func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("failed to encode json response")
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Warn().Err(err).Msg("failed to write json response")
	}
}

// inputValues encodes in as calculator query parameters.
func inputValues(in pricing.Input) url.Values {
	return url.Values{
		"fixed_costs":            {in.FixedCosts},
		"variable_cost_per_unit": {in.VariableCostPerUnit},
		"planned_units":          {in.PlannedUnits},
		"desired_margin_percent": {in.DesiredMarginPercent},
		"custom_selling_price":   {in.CustomSellingPrice},
	}
}

func inputFromValues(v url.Values) pricing.Input {
	return pricing.Input{
		FixedCosts:           v.Get("fixed_costs"),
		VariableCostPerUnit:  v.Get("variable_cost_per_unit"),
		PlannedUnits:         v.Get("planned_units"),
		DesiredMarginPercent: v.Get("desired_margin_percent"),
		CustomSellingPrice:   v.Get("custom_selling_price"),
	}
}
