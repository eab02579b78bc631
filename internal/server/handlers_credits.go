package server

import (
	"net/http"

	"github.com/jonathan/briefly/internal/server/middleware"
	"github.com/jonathan/briefly/internal/types"
)

// handleGetCredits returns the caller's balance
func (s *Server) handleGetCredits(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	balance, err := s.ledger.Balance(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.CreditsResponse{Credits: balance})
}

// handleCreditHistory returns the caller's recent ledger entries
func (s *Server) handleCreditHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit, ok := parseLimit(r)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	entries, err := s.ledger.History(r.Context(), userID, limit)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if entries == nil {
		entries = []types.LedgerEntry{}
	}

	s.jsonResponse(w, http.StatusOK, types.CreditHistoryResponse{Entries: entries, Count: len(entries)})
}
