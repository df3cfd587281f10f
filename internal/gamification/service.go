package gamification

import (
	"log"
	"time"
)

type XPEvent struct {
	EventType string    `json:"event_type"`
	XPAmount  int       `json:"xp_amount"`
	CreatedAt time.Time `json:"created_at"`
}

type ProgressResponse struct {
	XP            int       `json:"xp"`
	Level         int       `json:"level"`
	XPToNextLevel int       `json:"xp_to_next_level"`
	RecentEvents  []XPEvent `json:"recent_events"`
}

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// AwardAnswerXP computes the points for an answer and credits them to the
// user. Points are reported for every answer, but only correct answers move
// the XP total. XP bookkeeping failures are logged but never fail the answer
// submission.
func (s *Service) AwardAnswerXP(userID int64, basePoints int, isCorrect bool, reasoningQuality *float64, assistanceUsed bool) int {
	points := PointsEarned(basePoints, isCorrect, reasoningQuality, assistanceUsed)
	if !isCorrect || points <= 0 {
		return points
	}

	if _, _, err := s.store.AddXP(userID, points); err != nil {
		log.Printf("WARN: failed to add XP for user %d: %v", userID, err)
		return points
	}

	meta := map[string]interface{}{
		"base_points":     basePoints,
		"correct":         isCorrect,
		"assistance_used": assistanceUsed,
	}
	if reasoningQuality != nil {
		meta["reasoning_quality"] = *reasoningQuality
	}
	if err := s.store.LogXPEvent(userID, "assessment_answer", points, meta); err != nil {
		log.Printf("WARN: failed to log XP event for user %d: %v", userID, err)
	}

	return points
}

func (s *Service) GetProgress(userID int64) (*ProgressResponse, error) {
	xp, level, err := s.store.GetProgress(userID)
	if err != nil {
		return nil, err
	}

	events, err := s.store.RecentXPEvents(userID, 10)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []XPEvent{}
	}

	return &ProgressResponse{
		XP:            xp,
		Level:         level,
		XPToNextLevel: XPToNextLevel(xp),
		RecentEvents:  events,
	}, nil
}
