package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bnema/paperswipe/internal/adapters/recommend/workflow"
	"github.com/bnema/paperswipe/internal/application"
	"github.com/bnema/paperswipe/internal/domain"
)

const maxRequestBytes = 1 << 20

type getPapersRequest struct {
	ResearchTopic string `json:"research_topic" validate:"required,max=500"`
}

type getPapersResponse struct {
	SearchID string         `json:"search_id"`
	Papers   []domain.Paper `json:"papers"`
	Fallback bool           `json:"fallback"`
}

type saveSelectionRequest struct {
	SelectedPapers []domain.Paper `json:"selected_papers" validate:"max=100"`
}

type saveSelectionResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Count      int    `json:"count"`
	Received   int    `json:"received"`
	Duplicates int    `json:"duplicates"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  int64  `json:"code,omitempty"`
}

func (s *Server) getPapers(w http.ResponseWriter, r *http.Request) {
	var req getPapersRequest
	if err := s.decode(r, &req); err != nil {
		if errors.Is(err, errValidation) {
			message := "research topic is required"
			if strings.TrimSpace(req.ResearchTopic) != "" {
				message = "research topic is too long"
			}
			writeError(w, http.StatusBadRequest, message)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	search, err := s.searcher.Recommend(r.Context(), application.SearchCommand{Topic: req.ResearchTopic})
	if err != nil {
		s.writeSearchError(w, err)
		return
	}

	papers := search.Result.Papers
	if papers == nil {
		papers = []domain.Paper{}
	}
	writeJSON(w, http.StatusOK, getPapersResponse{
		SearchID: search.ID,
		Papers:   papers,
		Fallback: search.Result.Fallback,
	})
}

func (s *Server) writeSearchError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrEmptyTopic) {
		writeError(w, http.StatusBadRequest, "research topic is required")
		return
	}

	if apiErr, ok := workflow.AsAPIError(err); ok && apiErr.Code != 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("api error (%d): %s", apiErr.Code, apiErr.Message),
			Code:  apiErr.Code,
		})
		return
	}

	s.logger.Error().Err(err).Msg("paper recommendation failed")
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) saveSelection(w http.ResponseWriter, r *http.Request) {
	var req saveSelectionRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.saver.SaveSelection(r.Context(), application.SaveSelectionCommand{Papers: req.SelectedPapers})
	if err != nil {
		s.logger.Error().Err(err).Int("received", len(req.SelectedPapers)).Msg("saving selection failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, saveSelectionResponse{
		Success:    true,
		Message:    fmt.Sprintf("saved %d papers", result.Saved),
		Count:      result.Saved,
		Received:   result.Received,
		Duplicates: result.Duplicates,
	})
}

func (s *Server) indexHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "PaperSwipe API\n\n"+
		"POST /api/get-papers      {\"research_topic\": \"...\"}\n"+
		"POST /api/save-selection  {\"selected_papers\": [...]}\n"+
		"GET  /metrics\n")
}

var errValidation = errors.New("invalid request body")

func (s *Server) decode(r *http.Request, target any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if err := s.validate.Struct(target); err != nil {
		return fmt.Errorf("%w: %w", errValidation, err)
	}
	return nil
}
