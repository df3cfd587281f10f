package assessment

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/skillscan/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) StartAssessment(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.StartAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Subject == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "subject is required"})
		return
	}
	if req.SessionType == "" {
		req.SessionType = models.SessionDiagnostic
	}
	if !models.ValidSessionTypes[req.SessionType] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "session_type must be 'diagnostic', 'practice', or 'challenge'"})
		return
	}
	if req.GradeLevel != nil && !models.ValidGradeLevels[*req.GradeLevel] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid grade_level"})
		return
	}
	if req.InitialAbility != nil && (*req.InitialAbility < 0 || *req.InitialAbility > 1) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "initial_ability must be between 0 and 1"})
		return
	}

	resp, err := h.service.StartAssessment(userID, req)
	if err != nil {
		log.Printf("[assessment] StartAssessment error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to start assessment"})
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	sessionID := mux.Vars(r)["id"]

	resp, err := h.service.NextQuestion(userID, sessionID)
	if err != nil {
		h.writeServiceError(w, "NextQuestion", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	sessionID := mux.Vars(r)["id"]

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.QuestionID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "question_id is required"})
		return
	}
	if req.ResponseTimeSeconds < 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "response_time_seconds must not be negative"})
		return
	}

	resp, err := h.service.SubmitAnswer(userID, sessionID, req)
	if err != nil {
		h.writeServiceError(w, "SubmitAnswer", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) RecordAssistance(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	sessionID := mux.Vars(r)["id"]

	var req models.RecordAssistanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.QuestionID == "" || req.AssistanceType == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "question_id and assistance_type are required"})
		return
	}

	if err := h.service.RecordAssistance(userID, sessionID, req); err != nil {
		h.writeServiceError(w, "RecordAssistance", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (h *Handler) CompleteAssessment(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	sessionID := mux.Vars(r)["id"]

	analytics, err := h.service.CompleteAssessment(userID, sessionID)
	if err != nil {
		h.writeServiceError(w, "CompleteAssessment", err)
		return
	}

	writeJSON(w, http.StatusOK, analytics)
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	sessionID := mux.Vars(r)["id"]

	analytics, err := h.service.GetAnalytics(userID, sessionID)
	if err != nil {
		h.writeServiceError(w, "GetAnalytics", err)
		return
	}

	writeJSON(w, http.StatusOK, analytics)
}

func (h *Handler) GetAbilities(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	abilities, err := h.service.GetAbilities(userID)
	if err != nil {
		log.Printf("[assessment] GetAbilities error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get abilities"})
		return
	}

	writeJSON(w, http.StatusOK, abilities)
}

// writeServiceError maps engine usage errors to client status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Session not found"})
	case errors.Is(err, ErrQuestionNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
	case errors.Is(err, ErrSessionComplete):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Session is already complete"})
	case errors.Is(err, ErrQuestionNotAsked):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Question was not issued in this session"})
	default:
		log.Printf("[assessment] %s error: %v", op, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
