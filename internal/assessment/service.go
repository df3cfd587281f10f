package assessment

import (
	"errors"
	"log"
	"strings"

	"github.com/skillscan/backend/internal/gamification"
	"github.com/skillscan/backend/internal/models"
	"github.com/skillscan/backend/internal/questionbank"
)

var ErrQuestionNotFound = errors.New("question not found")

// defaultThinkAloudPrompts are served when a question carries none of its
// own, so the client always has something to elicit reasoning with.
var defaultThinkAloudPrompts = []string{
	"Explain your thinking process",
	"What strategy are you using?",
	"How confident are you in this answer?",
}

// Service orchestrates a full assessment flow: seeding the starting
// estimate, serving questions from the bank, applying answers to the engine,
// awarding XP, and writing everything back to Postgres.
type Service struct {
	manager *Manager
	store   *Store
	bank    *questionbank.Store
	xp      *gamification.Service
}

func NewService(manager *Manager, store *Store, bank *questionbank.Store, xp *gamification.Service) *Service {
	return &Service{manager: manager, store: store, bank: bank, xp: xp}
}

// StartAssessment seeds a session and registers it. The seed is resolved in
// priority order: an explicit hint from the request, then the user's track
// record in the subject, then the grade/age heuristics, then mid-scale.
func (s *Service) StartAssessment(userID int64, req models.StartAssessmentRequest) (*models.StartAssessmentResponse, error) {
	ability := s.seedAbility(userID, req)

	session := s.manager.StartSession(userID, req.Subject, req.SessionType, ability)
	if err := s.store.CreateSession(session.Snapshot()); err != nil {
		return nil, err
	}

	return &models.StartAssessmentResponse{
		SessionID:           session.ID,
		Subject:             session.Subject,
		InitialAbility:      session.Ability,
		EstimatedGradeLevel: GradeLevelFor(session.Ability),
	}, nil
}

func (s *Service) seedAbility(userID int64, req models.StartAssessmentRequest) float64 {
	if req.InitialAbility != nil {
		return clamp01(*req.InitialAbility)
	}

	prior, err := s.store.GetAbility(userID, req.Subject)
	if err != nil {
		log.Printf("WARN: failed to load prior ability for user %d: %v", userID, err)
	}
	if prior != nil && prior.QuestionsAnswered > 0 {
		accuracy := float64(prior.QuestionsCorrect) / float64(prior.QuestionsAnswered)
		if accuracy < 0.1 {
			accuracy = 0.1
		}
		if accuracy > 0.9 {
			accuracy = 0.9
		}
		return accuracy
	}

	if req.GradeLevel != nil {
		return InitialAbility(*req.GradeLevel, req.AgeYears)
	}
	return InitialAbility("", req.AgeYears)
}

// NextQuestion serves the information-maximizing question, or the final
// analytics when the session has nothing left to ask.
func (s *Service) NextQuestion(userID int64, sessionID string) (*models.NextQuestionResponse, error) {
	session, err := s.getSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	pool, err := s.bank.ListBySubject(session.Subject)
	if err != nil {
		return nil, err
	}

	descriptors := make([]models.QuestionDescriptor, len(pool))
	for i, q := range pool {
		descriptors[i] = q.QuestionDescriptor
	}

	descriptor, difficulty, complete, err := s.manager.NextQuestion(sessionID, descriptors)
	if err != nil {
		return nil, err
	}

	if complete {
		analytics := s.finishSession(session)
		return &models.NextQuestionResponse{
			SessionComplete: true,
			FinalAnalytics:  analytics,
		}, nil
	}

	for _, warning := range DescriptorWarnings(*descriptor) {
		log.Printf("WARN: question %s: %s", descriptor.ID, warning)
	}

	var full *models.Question
	for i := range pool {
		if pool[i].ID == descriptor.ID {
			full = &pool[i]
			break
		}
	}
	if full == nil {
		return nil, ErrQuestionNotFound
	}

	snap := session.Snapshot()
	if err := s.store.SaveSessionState(snap); err != nil {
		log.Printf("WARN: failed to persist session %s: %v", sessionID, err)
	}

	prompts := full.ThinkAloudPrompts
	if len(prompts) == 0 {
		prompts = defaultThinkAloudPrompts
	}

	return &models.NextQuestionResponse{
		Question: &models.ServedQuestion{
			ID:                   full.ID,
			Subject:              full.Subject,
			Topic:                full.Topic,
			Complexity:           full.Complexity,
			GradeLevel:           full.GradeLevel,
			QuestionText:         full.QuestionText,
			QuestionType:         full.QuestionType,
			Options:              full.Options,
			EstimatedTimeSeconds: full.EstimatedTimeSeconds,
			ThinkAloudPrompts:    prompts,
			EstimatedDifficulty:  difficulty,
			QuestionNumber:       len(snap.AskedQuestionIDs),
			AbilityEstimate:      snap.Ability,
		},
	}, nil
}

// SubmitAnswer checks the answer against the bank, applies it to the engine,
// awards XP, and persists the response.
func (s *Service) SubmitAnswer(userID int64, sessionID string, req models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error) {
	session, err := s.getSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	question, err := s.bank.GetQuestion(req.QuestionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	isCorrect := strings.EqualFold(
		strings.TrimSpace(req.Answer), strings.TrimSpace(question.CorrectAnswer))

	outcome, err := s.manager.SubmitAnswer(sessionID, req.QuestionID, isCorrect, req.ResponseTimeSeconds, req.ReasoningText)
	if err != nil {
		return nil, err
	}

	// Recorded only after the answer is accepted, so a rejected submission
	// leaves no assistance trail behind.
	if req.AssistanceUsed {
		assistanceType := req.AssistanceType
		if assistanceType == "" {
			assistanceType = "general"
		}
		if err := s.recordAssistance(session, req.QuestionID, assistanceType, req.AssistanceContent); err != nil {
			log.Printf("WARN: failed to record assistance for session %s: %v", sessionID, err)
		}
	}

	points := s.xp.AwardAnswerXP(userID, question.Points, isCorrect, outcome.ReasoningQuality, req.AssistanceUsed)

	if err := s.store.AppendResponse(sessionID, outcome.Record); err != nil {
		log.Printf("WARN: failed to persist response for session %s: %v", sessionID, err)
	}
	snap := session.Snapshot()
	if err := s.store.SaveSessionState(snap); err != nil {
		log.Printf("WARN: failed to persist session %s: %v", sessionID, err)
	}

	correct := 0
	for _, r := range snap.Responses {
		if r.IsCorrect {
			correct++
		}
	}
	accuracy := 0.0
	if len(snap.Responses) > 0 {
		accuracy = float64(correct) / float64(len(snap.Responses))
	}

	quality := 0.0
	if outcome.ReasoningQuality != nil {
		quality = *outcome.ReasoningQuality
	}

	return &models.SubmitAnswerResponse{
		Correct:             isCorrect,
		Explanation:         question.Explanation,
		PointsEarned:        points,
		NewAbility:          outcome.NewAbility,
		AbilityDelta:        outcome.AbilityDelta,
		EstimatedGradeLevel: GradeLevelFor(outcome.NewAbility),
		ReasoningQuality:    quality,
		QuestionsCompleted:  len(snap.Responses),
		AccuracySoFar:       accuracy,
	}, nil
}

// RecordAssistance logs a help event against an in-flight session.
func (s *Service) RecordAssistance(userID int64, sessionID string, req models.RecordAssistanceRequest) error {
	session, err := s.getSession(userID, sessionID)
	if err != nil {
		return err
	}
	return s.recordAssistance(session, req.QuestionID, req.AssistanceType, req.Content)
}

func (s *Service) recordAssistance(session *Session, questionID, assistanceType, content string) error {
	if err := s.manager.RecordAssistance(session.ID, questionID, assistanceType, content); err != nil {
		return err
	}

	snap := session.Snapshot()
	if len(snap.Assistance) > 0 {
		last := snap.Assistance[len(snap.Assistance)-1]
		if err := s.store.AppendAssistance(session.ID, last); err != nil {
			log.Printf("WARN: failed to persist assistance for session %s: %v", session.ID, err)
		}
	}
	return nil
}

// CompleteAssessment ends a session on the caller's initiative and returns
// its final analytics.
func (s *Service) CompleteAssessment(userID int64, sessionID string) (*models.SessionAnalytics, error) {
	session, err := s.getSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.manager.Complete(sessionID); err != nil {
		return nil, err
	}
	return s.finishSession(session), nil
}

// GetAnalytics reports on a session at any point in its life.
func (s *Service) GetAnalytics(userID int64, sessionID string) (*models.SessionAnalytics, error) {
	session, err := s.getSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	analytics := Report(session)
	return &analytics, nil
}

// GetAbilities lists the user's standing per-subject estimates.
func (s *Service) GetAbilities(userID int64) (*models.AbilityResponse, error) {
	rows, err := s.store.ListAbilities(userID)
	if err != nil {
		return nil, err
	}

	abilities := make([]models.SubjectAbility, 0, len(rows))
	for _, row := range rows {
		accuracy := 0.0
		if row.QuestionsAnswered > 0 {
			accuracy = float64(row.QuestionsCorrect) / float64(row.QuestionsAnswered)
		}
		abilities = append(abilities, models.SubjectAbility{
			Subject:             row.Subject,
			Ability:             row.Ability,
			EstimatedGradeLevel: GradeLevelFor(row.Ability),
			QuestionsAnswered:   row.QuestionsAnswered,
			Accuracy:            accuracy,
		})
	}
	return &models.AbilityResponse{Abilities: abilities}, nil
}

// getSession resolves a session from the registry, falling back to the
// database after a restart. A session belonging to another user is reported
// as not found rather than forbidden.
func (s *Service) getSession(userID int64, sessionID string) (*Session, error) {
	session, err := s.manager.Get(sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		session, err = s.store.LoadSession(sessionID)
		if err != nil {
			return nil, err
		}
		s.manager.Resume(session)
	} else if err != nil {
		return nil, err
	}

	if session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// finishSession writes the terminal state back: the session row and, once
// per session, the user's standing estimate for the subject. Completion is
// observed repeatedly (every next-question call on a spent session, plus an
// explicit complete), so the ability fold must not run twice — the upsert
// increments answer counts.
func (s *Service) finishSession(session *Session) *models.SessionAnalytics {
	analytics := Report(session)

	snap := session.Snapshot()
	if err := s.store.SaveSessionState(snap); err != nil {
		log.Printf("WARN: failed to persist session %s: %v", snap.ID, err)
	}

	if len(snap.Responses) > 0 && session.FinalizeResults() {
		correct := 0
		for _, r := range snap.Responses {
			if r.IsCorrect {
				correct++
			}
		}
		if err := s.store.SaveAbility(snap.UserID, snap.Subject, snap.Ability, len(snap.Responses), correct); err != nil {
			log.Printf("WARN: failed to persist ability for user %d: %v", snap.UserID, err)
		}
	}

	return &analytics
}
