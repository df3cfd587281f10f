package questionbank

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/skillscan/backend/internal/generator"
	"github.com/skillscan/backend/internal/models"
)

type Handler struct {
	store *Store
	gen   *generator.Generator
}

func NewHandler(store *Store, gen *generator.Generator) *Handler {
	return &Handler{store: store, gen: gen}
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	subject := query.Get("subject")
	limit := limitQueryParam(query, 20)
	offset := intQueryParam(query, "offset", 0)

	questions, total, err := h.store.List(subject, limit, offset)
	if err != nil {
		log.Printf("[questionbank] ListQuestions error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list questions"})
		return
	}

	if questions == nil {
		questions = []models.Question{}
	}
	writeJSON(w, http.StatusOK, models.QuestionListResponse{
		Questions: questions,
		Total:     total,
		Page:      offset/limit + 1,
		PageSize:  limit,
	})
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	question, err := h.store.GetQuestion(id)
	if err != nil {
		log.Printf("[questionbank] GetQuestion error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get question"})
		return
	}
	if question == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
		return
	}

	writeJSON(w, http.StatusOK, question)
}

func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.store.ListSubjects()
	if err != nil {
		log.Printf("[questionbank] ListSubjects error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list subjects"})
		return
	}

	if subjects == nil {
		subjects = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"subjects": subjects})
}

func (h *Handler) ImportQuestions(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20) // 10MB limit

	var req models.ImportQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if len(req.Questions) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "No questions in payload"})
		return
	}

	for i, q := range req.Questions {
		if q.Subject == "" || q.QuestionText == "" || q.CorrectAnswer == "" {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
				Error: "question " + strconv.Itoa(i) + ": subject, question_text and correct_answer are required"})
			return
		}
		if q.Complexity != "" && !models.ValidComplexities[q.Complexity] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
				Error: "question " + strconv.Itoa(i) + ": invalid complexity"})
			return
		}
		if q.GradeLevel != "" && !models.ValidGradeLevels[q.GradeLevel] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
				Error: "question " + strconv.Itoa(i) + ": invalid grade_level"})
			return
		}
	}

	result, err := h.store.Import(r.Context(), req.Questions)
	if err != nil {
		log.Printf("[questionbank] ImportQuestions error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Import failed"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Subject == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "subject is required"})
		return
	}
	if !models.ValidGradeLevels[req.GradeLevel] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid grade_level"})
		return
	}
	if req.Complexity == "" {
		req.Complexity = models.ComplexityApplication
	}
	if !models.ValidComplexities[req.Complexity] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid complexity"})
		return
	}
	if req.Count <= 0 {
		req.Count = 5
	}
	if req.Count > 20 {
		req.Count = 20
	}

	questions, llmResp, err := h.gen.GenerateQuestions(r.Context(), req.Subject, req.GradeLevel, req.Complexity, req.Count)
	if err != nil {
		log.Printf("[questionbank] GenerateQuestions error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Generation failed: " + err.Error()})
		return
	}
	log.Printf("[questionbank] generated %d questions (%d prompt tokens, %d output tokens)",
		len(questions), llmResp.PromptTokens, llmResp.OutputTokens)

	result, err := h.store.Import(r.Context(), questions)
	if err != nil {
		log.Printf("[questionbank] GenerateQuestions import error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save generated questions"})
		return
	}

	writeJSON(w, http.StatusCreated, models.GenerateQuestionsResponse{
		Questions: questions,
		Imported:  result.Imported,
		Skipped:   result.Skipped,
		Model:     h.gen.ModelName(),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}

// limitQueryParam parses the limit parameter, flooring it at 1 so the page
// computation never divides by zero.
func limitQueryParam(query url.Values, defaultVal int) int {
	v := intQueryParam(query, "limit", defaultVal)
	if v < 1 {
		return defaultVal
	}
	return v
}
