package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/corpus"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/pkg/utils"
)

func (s *Server) handleRespond(w http.ResponseWriter, r *http.Request) {
	var req models.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("respond request", zap.String("query", utils.Truncate(req.Query, 80)))
	s.respondJSON(w, http.StatusOK, s.bot.Respond(req.Query))
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	s.respondJSON(w, http.StatusOK, models.SuggestResponse{
		Query:       q,
		Suggestions: s.bot.Suggest(q),
	})
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records := s.bot.Records()
	if records == nil {
		records = []models.Record{}
	}
	s.respondJSON(w, http.StatusOK, models.RecordsResponse{Records: records, Total: len(records)})
}

func (s *Server) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	var input models.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("add record request", zap.String("question", utils.Truncate(input.Question, 80)))
	position, err := s.bot.Append(r.Context(), input)
	if errors.Is(err, corpus.ErrInvalidRecord) {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("add record failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]interface{}{"position": position, "status": "added"})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.bot.Reload(r.Context()); err != nil {
		s.logger.Error("reload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	snap := s.bot.Snapshot()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "reloaded",
		"records":    snap.Corpus.Len(),
		"generation": snap.Generation,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.bot.Status(r.Context()))
}

func (s *Server) handleWatchFiles(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		s.respondError(w, http.StatusNotImplemented, "watch not enabled")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"files": s.watch.Files()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
