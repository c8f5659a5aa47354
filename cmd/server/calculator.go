package main

import (
	"encoding/json"
	"net/http"

	"github.com/Simplici0/profitcalc/internal/display"
	"github.com/Simplici0/profitcalc/internal/pricing"
)

const maxRequestBody = 1 << 20

type calculatorViewData struct {
	baseViewData
	Input pricing.Input
	View  display.View
}

type calculateResponse struct {
	Input     pricing.Input  `json:"input"`
	Result    pricing.Result `json:"result"`
	Formatted display.View   `json:"formatted"`
}

// handleCalculator recomputes everything from the query string on every
// request. A visit without parameters starts from the configured defaults.
func (s *server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	in := s.defaults
	if query := r.URL.Query(); len(query) > 0 {
		in = inputFromValues(query)
	}

	s.renderTemplate(w, http.StatusOK, "calculator.html", s.calculatorData(in))
}

func (s *server) calculatorData(in pricing.Input) calculatorViewData {
	return calculatorViewData{
		Input: in,
		View:  display.New(in, pricing.Calculate(in), s.currency),
	}
}

func (s *server) handleAPICalculate(w http.ResponseWriter, r *http.Request) {
	var in pricing.Input
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&in); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	result := pricing.Calculate(in)
	s.writeJSON(w, http.StatusOK, calculateResponse{
		Input:     in,
		Result:    result,
		Formatted: display.New(in, result, s.currency),
	})
}
