package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/sustainability-chatbot/internal/facts"
	"github.com/jonathan/sustainability-chatbot/internal/rag"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AskRequest represents the request body for /api/ask
type AskRequest struct {
	Question       string  `json:"question" validate:"required"`
	TopK           int     `json:"top_k,omitempty" validate:"gte=0,lte=50"`
	ScoreThreshold float64 `json:"score_threshold,omitempty" validate:"gte=0,lte=1"`
	IncludeMatches bool    `json:"include_matches,omitempty"`
}

// FactRequest represents the request body for POST /api/facts
type FactRequest struct {
	Text string `json:"text" validate:"required"`
}

// FactsResponse represents the response for GET /api/facts
type FactsResponse struct {
	Facts []facts.Fact `json:"facts"`
}

// handleAsk answers a question using retrieved context
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	result, err := s.pipeline.Answer(r.Context(), req.Question, rag.Options{
		TopK:           req.TopK,
		ScoreThreshold: req.ScoreThreshold,
		IncludeMatches: req.IncludeMatches,
	})
	if err != nil {
		log.Printf("Answer failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to answer question")
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleAddFact screens and stores a user fact. A fact the checking model
// rejects returns 200 with accepted=false and the model's message, not an
// error status: the request itself succeeded.
func (s *Server) handleAddFact(w http.ResponseWriter, r *http.Request) {
	var req FactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	result, err := s.factService.Add(r.Context(), req.Text)
	if err != nil {
		log.Printf("Add fact failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to add fact")
		return
	}

	status := http.StatusOK
	if result.Accepted {
		status = http.StatusCreated
	}
	s.jsonResponse(w, status, result)
}

// handleListFacts returns every stored fact
func (s *Server) handleListFacts(w http.ResponseWriter, r *http.Request) {
	listed, err := s.factService.List(r.Context())
	if err != nil {
		log.Printf("List facts failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list facts")
		return
	}
	if listed == nil {
		listed = []facts.Fact{}
	}
	s.jsonResponse(w, http.StatusOK, FactsResponse{Facts: listed})
}

// handleDeleteFact removes a fact by id
func (s *Server) handleDeleteFact(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 0 {
		s.errorResponse(w, http.StatusBadRequest, "Fact id must be a non-negative integer")
		return
	}

	if err := s.factService.Delete(r.Context(), id); err != nil {
		log.Printf("Delete fact failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete fact")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
