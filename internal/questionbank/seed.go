package questionbank

import (
	"context"
	"fmt"
	"log"

	"github.com/skillscan/backend/internal/models"
)

// SeedIfEmpty loads the starter bank on first boot so a fresh deployment can
// run assessments immediately. A bank with any questions is left alone.
func SeedIfEmpty(ctx context.Context, store *Store) error {
	count, err := store.CountQuestions()
	if err != nil {
		return fmt.Errorf("count questions: %w", err)
	}
	if count > 0 {
		return nil
	}

	result, err := store.Import(ctx, starterQuestions())
	if err != nil {
		return fmt.Errorf("seed question bank: %w", err)
	}
	log.Printf("[questionbank] seeded %d starter questions", result.Imported)
	return nil
}

// starterQuestions spans the grade ladder within each subject so a session
// has informative candidates wherever the ability estimate lands.
func starterQuestions() []models.Question {
	return []models.Question{
		// ── Mathematics ─────────────────────────────────
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "mathematics", Topic: "counting",
				Complexity: models.ComplexityBasic, GradeLevel: models.GradeKindergarten,
			},
			QuestionText:  "If you have 2 apples and get 1 more, how many apples do you have?",
			QuestionType:  "multiple_choice",
			Options:       []string{"2", "3", "4", "5"},
			CorrectAnswer: "3",
			Explanation:   "2 apples plus 1 more apple makes 3 apples.",
			Points:        10, EstimatedTimeSeconds: 30,
			ThinkAloudPrompts: []string{"Count out loud as you add."},
		},
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "mathematics", Topic: "arithmetic",
				Complexity: models.ComplexityBasic, GradeLevel: models.Grade2,
			},
			QuestionText:  "What is 47 + 38?",
			QuestionType:  "multiple_choice",
			Options:       []string{"75", "85", "84", "86"},
			CorrectAnswer: "85",
			Explanation:   "47 + 38 = 47 + 40 - 2 = 85.",
			Points:        10, EstimatedTimeSeconds: 45,
			ThinkAloudPrompts: []string{"What strategy did you use to add the numbers?"},
		},
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "mathematics", Topic: "fractions",
				Complexity: models.ComplexityComprehension, GradeLevel: models.Grade4,
			},
			QuestionText:  "Which fraction is larger: 3/4 or 2/3?",
			QuestionType:  "multiple_choice",
			Options:       []string{"3/4", "2/3", "They are equal"},
			CorrectAnswer: "3/4",
			Explanation:   "3/4 = 9/12 and 2/3 = 8/12, so 3/4 is larger.",
			Points:        10, EstimatedTimeSeconds: 60,
			ThinkAloudPrompts: []string{"How did you compare the two fractions?"},
		},
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "mathematics", Topic: "algebra",
				Complexity: models.ComplexityApplication, GradeLevel: models.Grade7,
				MultiStep: true,
			},
			QuestionText:  "Solve for x: 3x - 7 = 14",
			QuestionType:  "short_answer",
			CorrectAnswer: "7",
			Explanation:   "Add 7 to both sides to get 3x = 21, then divide by 3.",
			Points:        10, EstimatedTimeSeconds: 90,
			ThinkAloudPrompts: []string{"Explain each step as you isolate x."},
		},
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "mathematics", Topic: "geometry",
				Complexity: models.ComplexityApplication, GradeLevel: models.Grade8,
				RequiresPriorKnowledge: true, MultiStep: true,
			},
			QuestionText:  "A right triangle has legs of length 6 and 8. What is the length of the hypotenuse?",
			QuestionType:  "short_answer",
			CorrectAnswer: "10",
			Explanation:   "By the Pythagorean theorem, sqrt(36 + 64) = sqrt(100) = 10.",
			Points:        10, EstimatedTimeSeconds: 90,
			ThinkAloudPrompts: []string{"Which theorem applies here, and why?"},
		},
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "mathematics", Topic: "functions",
				Complexity: models.ComplexityAnalysis, GradeLevel: models.Grade10,
				RequiresPriorKnowledge: true, AbstractReasoning: true,
			},
			QuestionText:  "If f(x) = x^2 - 4x + 3, for which values of x is f(x) = 0?",
			QuestionType:  "multiple_choice",
			Options:       []string{"x = 1 and x = 3", "x = -1 and x = -3", "x = 2 only", "x = 0 and x = 4"},
			CorrectAnswer: "x = 1 and x = 3",
			Explanation:   "The quadratic factors as (x - 1)(x - 3).",
			Points:        10, EstimatedTimeSeconds: 120,
			ThinkAloudPrompts: []string{"How did you decide whether to factor or use the quadratic formula?"},
		},
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "mathematics", Topic: "calculus",
				Complexity: models.ComplexitySynthesis, GradeLevel: models.Grade12,
				RequiresPriorKnowledge: true, MultiStep: true, AbstractReasoning: true,
			},
			QuestionText:  "What is the derivative of x^3 - 5x with respect to x?",
			QuestionType:  "short_answer",
			CorrectAnswer: "3x^2 - 5",
			Explanation:   "Apply the power rule term by term.",
			Points:        10, EstimatedTimeSeconds: 120,
			ThinkAloudPrompts: []string{"State the rule you applied to each term."},
		},
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "mathematics", Topic: "linear algebra",
				Complexity: models.ComplexityEvaluation, GradeLevel: models.GradeUndergraduate,
				RequiresPriorKnowledge: true, MultiStep: true, AbstractReasoning: true,
			},
			QuestionText:  "A 2x2 matrix has determinant zero. What does that imply about its column vectors?",
			QuestionType:  "multiple_choice",
			Options:       []string{"They are linearly dependent", "They are orthogonal", "They are unit vectors", "They span the plane"},
			CorrectAnswer: "They are linearly dependent",
			Explanation:   "A zero determinant means the columns do not span the plane, so one is a multiple of the other.",
			Points:        10, EstimatedTimeSeconds: 120,
			ThinkAloudPrompts: []string{"Connect the determinant to the geometry of the column vectors."},
		},

		// ── Science ─────────────────────────────────────
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "science", Topic: "living things",
				Complexity: models.ComplexityBasic, GradeLevel: models.Grade1,
			},
			QuestionText:  "Which of these is a living thing?",
			QuestionType:  "multiple_choice",
			Options:       []string{"A rock", "A tree", "A cloud", "A car"},
			CorrectAnswer: "A tree",
			Explanation:   "Trees grow, take in nutrients, and reproduce.",
			Points:        10, EstimatedTimeSeconds: 30,
			ThinkAloudPrompts: []string{"What makes something alive?"},
		},
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "science", Topic: "states of matter",
				Complexity: models.ComplexityComprehension, GradeLevel: models.Grade4,
			},
			QuestionText:  "What happens to water when it is cooled below 0 degrees Celsius?",
			QuestionType:  "multiple_choice",
			Options:       []string{"It boils", "It freezes", "It evaporates", "Nothing changes"},
			CorrectAnswer: "It freezes",
			Explanation:   "Water changes from liquid to solid at its freezing point.",
			Points:        10, EstimatedTimeSeconds: 45,
			ThinkAloudPrompts: []string{"Describe what the water molecules are doing."},
		},
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "science", Topic: "ecosystems",
				Complexity: models.ComplexityApplication, GradeLevel: models.Grade6,
				MultiStep: true,
			},
			QuestionText:  "In a food chain, grass is eaten by rabbits and rabbits are eaten by foxes. If the rabbit population drops sharply, what happens first?",
			QuestionType:  "multiple_choice",
			Options:       []string{"Foxes have less food", "Grass disappears", "Foxes eat grass", "Nothing changes"},
			CorrectAnswer: "Foxes have less food",
			Explanation:   "Foxes depend directly on rabbits, so their food supply shrinks first.",
			Points:        10, EstimatedTimeSeconds: 60,
			ThinkAloudPrompts: []string{"Trace the effect through the food chain step by step."},
		},
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "science", Topic: "chemistry",
				Complexity: models.ComplexityApplication, GradeLevel: models.Grade9,
				RequiresPriorKnowledge: true,
			},
			QuestionText:  "How many protons does a neutral carbon atom have?",
			QuestionType:  "short_answer",
			CorrectAnswer: "6",
			Explanation:   "Carbon's atomic number is 6, which is its proton count.",
			Points:        10, EstimatedTimeSeconds: 45,
			ThinkAloudPrompts: []string{"What does the atomic number tell you?"},
		},
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "science", Topic: "physics",
				Complexity: models.ComplexityAnalysis, GradeLevel: models.Grade11,
				RequiresPriorKnowledge: true, MultiStep: true, AbstractReasoning: true,
			},
			QuestionText:  "A 2 kg object accelerates at 3 m/s^2. What net force acts on it?",
			QuestionType:  "short_answer",
			CorrectAnswer: "6 N",
			Explanation:   "Newton's second law: F = ma = 2 x 3 = 6 newtons.",
			Points:        10, EstimatedTimeSeconds: 90,
			ThinkAloudPrompts: []string{"Which law relates force, mass, and acceleration?"},
		},
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "science", Topic: "molecular biology",
				Complexity: models.ComplexityEvaluation, GradeLevel: models.GradeGraduate,
				RequiresPriorKnowledge: true, MultiStep: true, AbstractReasoning: true,
			},
			QuestionText:  "Why does a single nucleotide deletion usually disrupt a protein more severely than a single nucleotide substitution?",
			QuestionType:  "multiple_choice",
			Options:       []string{"It shifts the reading frame", "It always stops transcription", "It changes only one codon", "It duplicates the gene"},
			CorrectAnswer: "It shifts the reading frame",
			Explanation:   "A deletion shifts every downstream codon, while a substitution changes at most one amino acid.",
			Points:        10, EstimatedTimeSeconds: 120,
			ThinkAloudPrompts: []string{"Compare how each mutation type alters the codon sequence."},
		},

		// ── Reading ─────────────────────────────────────
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "reading", Topic: "vocabulary",
				Complexity: models.ComplexityBasic, GradeLevel: models.Grade3,
			},
			QuestionText:  "Which word means the same as 'quick'?",
			QuestionType:  "multiple_choice",
			Options:       []string{"Slow", "Fast", "Loud", "Small"},
			CorrectAnswer: "Fast",
			Explanation:   "'Quick' and 'fast' are synonyms.",
			Points:        10, EstimatedTimeSeconds: 30,
		},
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "reading", Topic: "inference",
				Complexity: models.ComplexityAnalysis, GradeLevel: models.Grade8,
				AbstractReasoning: true,
			},
			QuestionText:  "Maya grabbed her umbrella and raincoat before leaving. What can you infer about the weather?",
			QuestionType:  "multiple_choice",
			Options:       []string{"It is likely raining or about to rain", "It is sunny", "It is snowing", "Nothing can be inferred"},
			CorrectAnswer: "It is likely raining or about to rain",
			Explanation:   "Her preparations imply she expects rain, even though the text never states it.",
			Points:        10, EstimatedTimeSeconds: 60,
			ThinkAloudPrompts: []string{"What clues in the sentence support your inference?"},
		},
		{
			QuestionDescriptor: models.QuestionDescriptor{
				Subject: "reading", Topic: "rhetoric",
				Complexity: models.ComplexitySynthesis, GradeLevel: models.GradeUndergraduate,
				RequiresPriorKnowledge: true, AbstractReasoning: true,
			},
			QuestionText:  "An author concedes a counterargument before refuting it. What is the main rhetorical effect?",
			QuestionType:  "multiple_choice",
			Options:       []string{"It strengthens credibility by showing fairness", "It weakens the thesis", "It confuses the reader", "It pads the essay"},
			CorrectAnswer: "It strengthens credibility by showing fairness",
			Explanation:   "Acknowledging opposing views signals the author has weighed them, which builds trust.",
			Points:        10, EstimatedTimeSeconds: 90,
			ThinkAloudPrompts: []string{"Evaluate how the concession changes your view of the author."},
		},
	}
}
