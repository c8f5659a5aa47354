package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/profitcalc/internal/display"
	"github.com/Simplici0/profitcalc/internal/export"
	"github.com/Simplici0/profitcalc/internal/pricing"
	"github.com/Simplici0/profitcalc/internal/quote"
)

const listTimeLayout = "2006-01-02 15:04"

type quoteListItem struct {
	ID        int64
	CreatedAt string
	Title     string
	View      display.View
}

type quotesViewData struct {
	baseViewData
	Query  string
	Quotes []quoteListItem
}

type quoteDetailViewData struct {
	baseViewData
	Quote         quote.Quote
	CreatedAt     string
	Sections      []export.Section
	CalculatorURL string
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.quotes.List(r.Context(), query)
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("failed to load quotes")
		http.Error(w, "failed to load quotes", http.StatusInternalServerError)
		return
	}

	items := make([]quoteListItem, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, quoteListItem{
			ID:        q.ID,
			CreatedAt: q.CreatedAt.Format(listTimeLayout),
			Title:     q.Title,
			View:      display.New(q.Input, q.Result, s.currency),
		})
	}

	data := quotesViewData{Query: query, Quotes: items}
	if r.URL.Query().Has("deleted") {
		data.SuccessMessage = "Cotización eliminada."
	}
	s.renderTemplate(w, http.StatusOK, "quotes.html", data)
}

func (s *server) handleQuoteCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in := inputFromValues(r.PostForm)
	saved, err := s.quotes.Save(r.Context(), quote.Quote{
		Title:  r.PostFormValue("title"),
		Notes:  r.PostFormValue("notes"),
		Input:  in,
		Result: pricing.Calculate(in),
	})
	if errors.Is(err, quote.ErrTitleRequired) {
		data := s.calculatorData(in)
		data.ErrorMessage = "El título es obligatorio para guardar la cotización."
		s.renderTemplate(w, http.StatusUnprocessableEntity, "calculator.html", data)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("failed to save quote")
		http.Error(w, "failed to save quote", http.StatusInternalServerError)
		return
	}

	s.log.Info().Int64("quote_id", saved.ID).Str("ref", saved.Ref).Msg("quote saved")
	http.Redirect(w, r, fmt.Sprintf("/quotes/%d?saved=1", saved.ID), http.StatusSeeOther)
}

func (s *server) handleQuoteDetail(w http.ResponseWriter, r *http.Request) {
	q, ok := s.loadQuote(w, r)
	if !ok {
		return
	}

	data := quoteDetailViewData{
		Quote:         q,
		CreatedAt:     q.CreatedAt.Format(listTimeLayout),
		Sections:      export.Summary(q, s.currency),
		CalculatorURL: "/?" + inputValues(q.Input).Encode(),
	}
	if r.URL.Query().Has("saved") {
		data.SuccessMessage = "Cotización guardada."
	}
	s.renderTemplate(w, http.StatusOK, "quote_detail.html", data)
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	q, ok := s.loadQuote(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.Text(&buf, q, s.currency); err != nil {
		s.log.Error().Err(err).Int64("quote_id", q.ID).Msg("failed to render quote text")
		http.Error(w, "failed to render quote text", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *server) handleQuotePDF(w http.ResponseWriter, r *http.Request) {
	q, ok := s.loadQuote(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.PDF(&buf, q, s.currencyCode); err != nil {
		s.log.Error().Err(err).Int64("quote_id", q.ID).Msg("failed to render quote pdf")
		http.Error(w, "failed to render quote pdf", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="cotizacion-%d.pdf"`, q.ID))
	_, _ = w.Write(buf.Bytes())
}

func (s *server) handleQuotesXLSX(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.quotes.List(r.Context(), query)
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("failed to load quotes")
		http.Error(w, "failed to load quotes", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := export.XLSX(&buf, quotes, s.currencyCode); err != nil {
		s.log.Error().Err(err).Msg("failed to render quotes spreadsheet")
		http.Error(w, "failed to render spreadsheet", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="cotizaciones.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *server) handleQuoteDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := quoteID(w, r)
	if !ok {
		return
	}

	err := s.quotes.Delete(r.Context(), id)
	if errors.Is(err, quote.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("quote_id", id).Msg("failed to delete quote")
		http.Error(w, "failed to delete quote", http.StatusInternalServerError)
		return
	}

	s.log.Info().Int64("quote_id", id).Msg("quote deleted")
	http.Redirect(w, r, "/quotes?deleted=1", http.StatusSeeOther)
}

// loadQuote resolves the {id} URL parameter and writes the error response
// itself when the quote cannot be served.
func (s *server) loadQuote(w http.ResponseWriter, r *http.Request) (quote.Quote, bool) {
	id, ok := quoteID(w, r)
	if !ok {
		return quote.Quote{}, false
	}

	q, err := s.quotes.Get(r.Context(), id)
	if errors.Is(err, quote.ErrNotFound) {
		http.NotFound(w, r)
		return quote.Quote{}, false
	}
	if err != nil {
		s.log.Error().Err(err).Int64("quote_id", id).Msg("failed to load quote")
		http.Error(w, "failed to load quote", http.StatusInternalServerError)
		return quote.Quote{}, false
	}

	return q, true
}

func quoteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid quote id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
