package assessment

import (
	"errors"
	"fmt"
	"testing"

	"github.com/skillscan/backend/internal/models"
	"github.com/skillscan/backend/internal/reasoning"
)

func newTestManager() *Manager {
	return NewManager(reasoning.NewHeuristic(), 0)
}

func testPool(n int) []models.QuestionDescriptor {
	pool := make([]models.QuestionDescriptor, n)
	for i := 0; i < n; i++ {
		d := descriptor(models.ComplexityApplication, models.Grade8)
		d.ID = fmt.Sprintf("q%02d", i+1)
		pool[i] = d
	}
	return pool
}

func TestStartSession(t *testing.T) {
	m := newTestManager()
	s := m.StartSession(7, "Mathematics", models.SessionDiagnostic, 0.475)

	if s.ID == "" {
		t.Fatal("session id is empty")
	}
	if s.Status != models.SessionInProgress {
		t.Errorf("new session status = %s, want in_progress", s.Status)
	}
	if s.Ability != 0.475 {
		t.Errorf("seeded ability = %f, want 0.475", s.Ability)
	}

	got, err := m.Get(s.ID)
	if err != nil || got != s {
		t.Errorf("Get(%s) = %v, %v", s.ID, got, err)
	}
}

func TestStartSessionClampsSeed(t *testing.T) {
	m := newTestManager()
	if s := m.StartSession(1, "Science", models.SessionPractice, 1.7); s.Ability != 1.0 {
		t.Errorf("seed 1.7 clamped to %f, want 1.0", s.Ability)
	}
	if s := m.StartSession(1, "Science", models.SessionPractice, -0.2); s.Ability != 0.0 {
		t.Errorf("seed -0.2 clamped to %f, want 0.0", s.Ability)
	}
}

func TestSessionUnknownID(t *testing.T) {
	m := newTestManager()

	if _, err := m.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrSessionNotFound", err)
	}
	if _, _, _, err := m.NextQuestion("nope", testPool(3)); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("NextQuestion(unknown) error = %v, want ErrSessionNotFound", err)
	}
	if _, err := m.SubmitAnswer("nope", "q01", true, 10, ""); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("SubmitAnswer(unknown) error = %v, want ErrSessionNotFound", err)
	}
}

func TestNextQuestionExcludesAskedAcrossCalls(t *testing.T) {
	m := newTestManager()
	s := m.StartSession(1, "Mathematics", models.SessionDiagnostic, 0.5)
	pool := testPool(5)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		q, difficulty, complete, err := m.NextQuestion(s.ID, pool)
		if err != nil {
			t.Fatalf("call %d: %v", i+1, err)
		}
		if complete || q == nil {
			t.Fatalf("call %d reported completion with questions remaining", i+1)
		}
		if seen[q.ID] {
			t.Fatalf("question %s issued twice", q.ID)
		}
		if difficulty <= 0 || difficulty >= 1 {
			t.Errorf("cached difficulty %f outside (0,1)", difficulty)
		}
		seen[q.ID] = true
	}

	if len(s.AskedQuestionIDs) != 5 {
		t.Errorf("asked list has %d entries, want 5", len(s.AskedQuestionIDs))
	}
}

func TestPoolExhaustionCompletesSession(t *testing.T) {
	m := newTestManager()
	s := m.StartSession(1, "Mathematics", models.SessionDiagnostic, 0.5)
	pool := testPool(5)

	for i := 0; i < 5; i++ {
		q, _, complete, err := m.NextQuestion(s.ID, pool)
		if err != nil || complete {
			t.Fatalf("call %d: complete=%v err=%v", i+1, complete, err)
		}
		if _, err := m.SubmitAnswer(s.ID, q.ID, i%2 == 0, 20, ""); err != nil {
			t.Fatalf("answer %d: %v", i+1, err)
		}
	}

	// Sixth call: pool is spent, session completes
	q, _, complete, err := m.NextQuestion(s.ID, pool)
	if err != nil {
		t.Fatalf("sixth call: %v", err)
	}
	if !complete || q != nil {
		t.Fatalf("sixth call: q=%v complete=%v, want completion signal", q, complete)
	}
	if s.Status != models.SessionComplete {
		t.Errorf("session status = %s, want complete", s.Status)
	}
	if s.CompletedAt == nil {
		t.Error("completed session has no completion timestamp")
	}
}

func TestMaxQuestionCap(t *testing.T) {
	m := NewManager(reasoning.NewHeuristic(), 3)
	s := m.StartSession(1, "Mathematics", models.SessionChallenge, 0.5)
	pool := testPool(10)

	for i := 0; i < 3; i++ {
		if _, _, complete, err := m.NextQuestion(s.ID, pool); err != nil || complete {
			t.Fatalf("call %d: complete=%v err=%v", i+1, complete, err)
		}
	}

	_, _, complete, err := m.NextQuestion(s.ID, pool)
	if err != nil {
		t.Fatal(err)
	}
	if !complete {
		t.Error("cap of 3 did not complete the session on the fourth call")
	}
}

func TestSubmitAnswerForUnissuedQuestion(t *testing.T) {
	m := newTestManager()
	s := m.StartSession(1, "Mathematics", models.SessionDiagnostic, 0.5)

	_, err := m.SubmitAnswer(s.ID, "never-asked", true, 10, "")
	if !errors.Is(err, ErrQuestionNotAsked) {
		t.Errorf("answer for unissued question: error = %v, want ErrQuestionNotAsked", err)
	}
}

func TestSubmitAnswerUpdatesAbility(t *testing.T) {
	m := newTestManager()
	s := m.StartSession(1, "Mathematics", models.SessionDiagnostic, 0.5)
	pool := testPool(1)

	q, difficulty, _, err := m.NextQuestion(s.ID, pool)
	if err != nil {
		t.Fatal(err)
	}

	outcome, err := m.SubmitAnswer(s.ID, q.ID, true, 5, "")
	if err != nil {
		t.Fatal(err)
	}

	if outcome.NewAbility <= 0.5 {
		t.Errorf("correct answer left ability at %f", outcome.NewAbility)
	}
	if outcome.AbilityDelta <= 0 {
		t.Errorf("correct answer delta = %f, want > 0", outcome.AbilityDelta)
	}
	if outcome.Record.QuestionDifficulty != difficulty {
		t.Errorf("recorded difficulty %f differs from selection-time value %f",
			outcome.Record.QuestionDifficulty, difficulty)
	}
	if len(s.Responses) != 1 {
		t.Errorf("response log has %d records, want 1", len(s.Responses))
	}
}

func TestSubmitAnswerScoresReasoning(t *testing.T) {
	m := newTestManager()
	s := m.StartSession(1, "Mathematics", models.SessionDiagnostic, 0.5)
	q, _, _, err := m.NextQuestion(s.ID, testPool(1))
	if err != nil {
		t.Fatal(err)
	}

	outcome, err := m.SubmitAnswer(s.ID, q.ID, true, 20,
		"First I compared both values, then I checked the difference because the question asked for the larger one.")
	if err != nil {
		t.Fatal(err)
	}
	if outcome.ReasoningQuality == nil {
		t.Fatal("reasoning text supplied but no quality recorded")
	}
	if *outcome.ReasoningQuality <= 0 || *outcome.ReasoningQuality > 1 {
		t.Errorf("reasoning quality %f outside (0,1]", *outcome.ReasoningQuality)
	}
}

func TestSubmitAnswerAfterCompletion(t *testing.T) {
	m := newTestManager()
	s := m.StartSession(1, "Mathematics", models.SessionDiagnostic, 0.5)
	q, _, _, err := m.NextQuestion(s.ID, testPool(1))
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Complete(s.ID); err != nil {
		t.Fatal(err)
	}

	// A question issued before completion may still be answered late
	if _, err := m.SubmitAnswer(s.ID, q.ID, true, 10, ""); err != nil {
		t.Fatalf("late answer for issued question: %v", err)
	}

	// But only once, and unissued questions stay rejected
	if _, err := m.SubmitAnswer(s.ID, q.ID, true, 10, ""); !errors.Is(err, ErrSessionComplete) {
		t.Errorf("re-answer after completion: error = %v, want ErrSessionComplete", err)
	}
	if _, err := m.SubmitAnswer(s.ID, "never-asked", true, 10, ""); !errors.Is(err, ErrQuestionNotAsked) {
		t.Errorf("unissued question after completion: error = %v, want ErrQuestionNotAsked", err)
	}

	// Completing again is a no-op
	if err := m.Complete(s.ID); err != nil {
		t.Errorf("second Complete returned %v", err)
	}
}

func TestFinalizeResultsOnlyOnce(t *testing.T) {
	m := newTestManager()
	s := m.StartSession(1, "Mathematics", models.SessionDiagnostic, 0.5)
	pool := testPool(1)

	q, _, _, err := m.NextQuestion(s.ID, pool)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.SubmitAnswer(s.ID, q.ID, true, 10, ""); err != nil {
		t.Fatal(err)
	}
	if _, _, complete, err := m.NextQuestion(s.ID, pool); err != nil || !complete {
		t.Fatalf("pool exhaustion: complete=%v err=%v", complete, err)
	}

	if !s.FinalizeResults() {
		t.Fatal("first finalize should report the transition")
	}
	// Repeated completion observations must not fold results again
	if s.FinalizeResults() {
		t.Error("second finalize reported the transition again")
	}
}

func TestResumedCompleteSessionAlreadyFinalized(t *testing.T) {
	m := newTestManager()
	restored := &Session{
		ID:      "resumed",
		UserID:  9,
		Subject: "Science",
		Status:  models.SessionComplete,
	}
	m.Resume(restored)

	if restored.FinalizeResults() {
		t.Error("session persisted as complete must not finalize again after resume")
	}
}

func TestRecordAssistance(t *testing.T) {
	m := newTestManager()
	s := m.StartSession(1, "Mathematics", models.SessionDiagnostic, 0.5)
	q, _, _, err := m.NextQuestion(s.ID, testPool(2))
	if err != nil {
		t.Fatal(err)
	}

	before := s.Ability
	if err := m.RecordAssistance(s.ID, q.ID, "hint", "try subtracting first"); err != nil {
		t.Fatal(err)
	}

	if len(s.Assistance) != 1 {
		t.Fatalf("assistance log has %d events, want 1", len(s.Assistance))
	}
	if s.Ability != before {
		t.Errorf("assistance moved ability from %f to %f", before, s.Ability)
	}
}

func TestResumeRestoresSessionState(t *testing.T) {
	m := newTestManager()
	s := m.StartSession(42, "Science", models.SessionPractice, 0.6)
	pool := testPool(3)

	q, _, _, err := m.NextQuestion(s.ID, pool)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.SubmitAnswer(s.ID, q.ID, true, 15, ""); err != nil {
		t.Fatal(err)
	}

	// Simulate restart: rebuild from a persisted snapshot in a new manager
	snap := s.Snapshot()
	m2 := newTestManager()
	restored := &Session{
		ID:               snap.ID,
		UserID:           snap.UserID,
		Subject:          snap.Subject,
		SessionType:      snap.SessionType,
		StartedAt:        snap.StartedAt,
		Ability:          snap.Ability,
		AskedQuestionIDs: snap.AskedQuestionIDs,
		Responses:        snap.Responses,
		Assistance:       snap.Assistance,
		Status:           snap.Status,
	}
	m2.Resume(restored)

	// The already-asked question stays excluded after resume
	next, _, complete, err := m2.NextQuestion(snap.ID, pool)
	if err != nil || complete {
		t.Fatalf("post-resume NextQuestion: complete=%v err=%v", complete, err)
	}
	if next.ID == q.ID {
		t.Errorf("resumed session re-issued question %s", q.ID)
	}

	// And its cached difficulty survives for late answers
	if _, err := m2.SubmitAnswer(snap.ID, next.ID, false, 25, ""); err != nil {
		t.Fatalf("post-resume answer: %v", err)
	}
}

func TestAbilityBoundsInvariant(t *testing.T) {
	m := newTestManager()
	s := m.StartSession(1, "Mathematics", models.SessionChallenge, 0.5)
	pool := testPool(60)

	for i := 0; ; i++ {
		q, _, complete, err := m.NextQuestion(s.ID, pool)
		if err != nil {
			t.Fatal(err)
		}
		if complete {
			break
		}
		outcome, err := m.SubmitAnswer(s.ID, q.ID, i%3 != 0, float64(i%80), "")
		if err != nil {
			t.Fatal(err)
		}
		if outcome.NewAbility < 0 || outcome.NewAbility > 1 {
			t.Fatalf("ability %f escaped [0,1] on answer %d", outcome.NewAbility, i+1)
		}
	}
}
