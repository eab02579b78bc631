package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jonathan/briefly/internal/rendering"
	"github.com/jonathan/briefly/internal/server/middleware"
	"github.com/jonathan/briefly/internal/types"
	"go.uber.org/zap"
)

// handleGenerateBrief spends credits to synthesize and store a brief. The
// bearer token must be present before the body is read; the gateway
// resolves it.
func (s *Server) handleGenerateBrief(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	var req types.GenerateBriefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.gateway.Generate(r.Context(), token, req.Intake)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.logger.Info("brief generated",
		zap.String("brief_id", result.Brief.ID),
		zap.String("user_id", result.Brief.UserID),
		zap.Int64("credits_remaining", result.CreditsRemaining),
	)

	s.jsonResponse(w, http.StatusOK, types.GenerateBriefResponse{
		Brief:            result.Brief,
		CreditsRemaining: result.CreditsRemaining,
	})
}

// handleListUserBriefs lists the caller's briefs, newest first
func (s *Server) handleListUserBriefs(w http.ResponseWriter, r *http.Request) {
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

	briefs, err := s.briefs.ListByUser(r.Context(), userID, limit)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if briefs == nil {
		briefs = []*types.Brief{}
	}

	s.jsonResponse(w, http.StatusOK, types.BriefListResponse{Briefs: briefs, Count: len(briefs)})
}

// handleGetBrief returns one of the caller's briefs. Briefs owned by other
// users are reported as not found.
func (s *Server) handleGetBrief(w http.ResponseWriter, r *http.Request) {
	b, ok := s.ownedBrief(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, b)
}

// handleExportBrief renders one of the caller's briefs as a Markdown or LaTeX
// document, selected by the format query parameter.
func (s *Server) handleExportBrief(w http.ResponseWriter, r *http.Request) {
	format, err := rendering.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.handleError(w, err)
		return
	}

	b, ok := s.ownedBrief(w, r)
	if !ok {
		return
	}

	doc, err := rendering.Render(b, format)
	if err != nil {
		s.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s%s"`, b.ID, format.Extension()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		s.logger.Warn("failed to write export", zap.String("brief_id", b.ID), zap.Error(err))
	}
}

// ownedBrief loads the brief named by the id path value and checks that it
// belongs to the caller. On failure it writes the response and returns false.
func (s *Server) ownedBrief(w http.ResponseWriter, r *http.Request) (*types.Brief, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	id := r.PathValue("id")
	b, err := s.briefs.Get(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return nil, false
	}
	if b == nil || b.UserID != userID {
		s.handleError(w, &ErrBriefNotFound{ID: id})
		return nil, false
	}
	return b, true
}

// parseLimit reads the optional limit query parameter. Zero means "use the
// store default".
func parseLimit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
