package trivia

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandlers provides the REST endpoints for the question bank.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers backed by the trivia service.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		logger: logger,
	}
}

// GetCategories handles GET /categories.
func (h *HTTPHandlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "list categories")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": categoriesMap(cats),
	})
}

// ListQuestions handles GET /questions?page=N.
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}

	result, err := h.svc.QuestionPage(r.Context(), page)
	if err != nil {
		h.respondServiceError(w, err, "list questions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"questions":      questionsOrEmpty(result.Questions),
		"totalQuestions": result.Total,
		"categories":     categoriesMap(result.Categories),
		// The unfiltered listing has no category filter applied.
		"currentCategory": "",
	})
}

// DeleteQuestion handles DELETE /questions/{id}.
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	if err := h.svc.DeleteQuestion(r.Context(), id); err != nil {
		h.respondServiceError(w, err, "delete question")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Question successfully deleted",
		"deleted": id,
	})
}

// CreateQuestion handles POST /questions.
func (h *HTTPHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var in CreateQuestionInput
	if !h.decodeBody(w, r, &in) {
		return
	}

	if _, err := h.svc.CreateQuestion(r.Context(), in); err != nil {
		h.respondServiceError(w, err, "create question")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Question successfully created",
	})
}

// SearchQuestions handles POST /questions/search.
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SearchTerm string `json:"searchTerm"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}

	result, err := h.svc.SearchQuestions(r.Context(), req.SearchTerm)
	if err != nil {
		h.respondServiceError(w, err, "search questions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       questionsOrEmpty(result.Questions),
		"totalQuestions":  len(result.Questions),
		"currentCategory": result.CurrentCategory,
	})
}

// GetQuestionsByCategory handles GET /categories/{id}/questions.
func (h *HTTPHandlers) GetQuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	result, err := h.svc.QuestionsByCategory(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "questions by category")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       questionsOrEmpty(result.Questions),
		"totalQuestions":  len(result.Questions),
		"currentCategory": result.Category.Type,
	})
}

// PlayQuiz handles POST /quizzes.
func (h *HTTPHandlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PreviousQuestions []int `json:"previous_questions"`
		QuizCategory      *struct {
			ID   int    `json:"id"`
			Type string `json:"type"`
		} `json:"quiz_category"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}

	categoryID := 0
	if req.QuizCategory != nil {
		categoryID = req.QuizCategory.ID
	}

	question, err := h.svc.NextQuizQuestion(r.Context(), req.PreviousQuestions, categoryID)
	if err != nil {
		h.respondServiceError(w, err, "quiz question")
		return
	}

	// question is nil once the category is exhausted; the client reads the
	// null as the end-of-quiz signal.
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": question,
	})
}

// decodeBody parses a JSON request body. Type mismatches are semantically
// invalid (422); anything else unparseable is a plain bad request (400).
func (h *HTTPHandlers) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			httperrors.RespondUnprocessable(w)
		} else {
			httperrors.RespondBadRequest(w)
		}
		return false
	}
	return true
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httperrors.RespondNotFound(w)
	case errors.Is(err, ErrBadRequest):
		httperrors.RespondBadRequest(w)
	case errors.Is(err, ErrUnprocessable):
		httperrors.RespondUnprocessable(w)
	default:
		h.logger.Error().Err(err).Str("op", op).Msg("store failure")
		httperrors.RespondInternalError(w)
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// categoriesMap renders categories as the id→type object the frontend
// expects, with string keys.
func categoriesMap(cats []Category) map[string]string {
	out := make(map[string]string, len(cats))
	for _, c := range cats {
		out[strconv.Itoa(c.ID)] = c.Type
	}
	return out
}

// questionsOrEmpty keeps empty result sets serializing as [] rather than null.
func questionsOrEmpty(qs []Question) []Question {
	if qs == nil {
		return []Question{}
	}
	return qs
}
