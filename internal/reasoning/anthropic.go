package reasoning

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

const scorerSystemPrompt = `You grade the quality of a student's think-aloud explanation.
Score how well the explanation shows genuine reasoning: causal connectives,
ordered steps, comparisons, concrete examples. Respond with a single decimal
number between 0.0 and 1.0 and nothing else.`

// ModelScorer grades explanations with the Anthropic API. It satisfies the
// same Scorer contract as the heuristic; on any API failure it falls back to
// the heuristic so a scoring outage never blocks an assessment.
type ModelScorer struct {
	client   *anthropic.Client
	model    string
	fallback Heuristic
	timeout  time.Duration
}

func NewModelScorer() *ModelScorer {
	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = "claude-opus-4-5-20251101"
	}
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &ModelScorer{
		client:  &client,
		model:   model,
		timeout: 10 * time.Second,
	}
}

func (s *ModelScorer) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(s.model),
		MaxTokens:   16,
		Temperature: param.NewOpt(0.0),
		System: []anthropic.TextBlockParam{
			{Text: scorerSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		log.Printf("WARN: model scorer failed, using heuristic: %v", err)
		return s.fallback.Score(text)
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(responseText), 64)
	if err != nil {
		log.Printf("WARN: model scorer returned %q, using heuristic", responseText)
		return s.fallback.Score(text)
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

// NewScorerFromEnv picks the scorer implementation. The heuristic is the
// default; set REASONING_SCORER=model to grade with the Anthropic API.
func NewScorerFromEnv() Scorer {
	if os.Getenv("REASONING_SCORER") == "model" {
		log.Println("Reasoning scorer using Anthropic API")
		return NewModelScorer()
	}
	return NewHeuristic()
}
