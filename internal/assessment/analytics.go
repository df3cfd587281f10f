package assessment

import (
	"time"

	"github.com/skillscan/backend/internal/models"
)

// Trajectory simulation step sizes. The trajectory replays responses against
// these fixed steps for charting; it is illustrative and does not reproduce
// the true per-answer estimates from UpdateAbility.
const (
	trajectoryGain = 0.05
	trajectoryLoss = 0.03
)

// Report derives summary statistics from a session's response log. Works on
// both in-progress and completed sessions; every statistic over an empty log
// is zero rather than an error.
func Report(s *Session) models.SessionAnalytics {
	snap := s.Snapshot()

	total := len(snap.AskedQuestionIDs)
	answered := len(snap.Responses)

	correct := 0
	var totalTime, totalQuality float64
	qualityCount := 0
	for _, r := range snap.Responses {
		if r.IsCorrect {
			correct++
		}
		totalTime += r.ResponseTimeSeconds
		if r.ReasoningQuality != nil {
			totalQuality += *r.ReasoningQuality
			qualityCount++
		}
	}

	// Accuracy shares its denominator with TotalQuestions: an issued but
	// unanswered question counts against it.
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}

	assistancePct := 0.0
	if total > 0 {
		assistancePct = float64(len(snap.Assistance)) / float64(total) * 100
	}

	avgTime := 0.0
	if answered > 0 {
		avgTime = totalTime / float64(answered)
	}

	avgQuality := 0.0
	if qualityCount > 0 {
		avgQuality = totalQuality / float64(qualityCount)
	}

	end := time.Now().UTC()
	if snap.CompletedAt != nil {
		end = *snap.CompletedAt
	}

	return models.SessionAnalytics{
		SessionID:            snap.ID,
		TotalQuestions:       total,
		Accuracy:             accuracy,
		FinalAbility:         snap.Ability,
		EstimatedGradeLevel:  GradeLevelFor(snap.Ability),
		AssistancePercentage: assistancePct,
		AvgResponseTime:      avgTime,
		AvgReasoningQuality:  avgQuality,
		SessionDuration:      end.Sub(snap.StartedAt).Seconds(),
		Trajectory:           trajectory(snap.Responses),
	}
}

// trajectory simulates a running ability estimate over the response log,
// starting mid-scale and stepping by fixed amounts per outcome.
func trajectory(responses []models.ResponseRecord) []models.TrajectoryPoint {
	points := make([]models.TrajectoryPoint, 0, len(responses))
	estimate := 0.5

	for i, r := range responses {
		if r.IsCorrect {
			estimate = clamp01(estimate + trajectoryGain)
		} else {
			estimate = clamp01(estimate - trajectoryLoss)
		}
		points = append(points, models.TrajectoryPoint{
			QuestionNumber:     i + 1,
			AbilityEstimate:    estimate,
			QuestionDifficulty: r.QuestionDifficulty,
			IsCorrect:          r.IsCorrect,
		})
	}

	return points
}
