package commsig

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// ──────────────────────────────────────────────
// Assessment — survey scoring and signature derivation
// ──────────────────────────────────────────────
//
// The upstream computation that produces a TraitProfile: a fixed survey,
// one vote per answer, the dominant value per dimension, and a signature
// label composed from the drive and expression winners. The response
// engine itself never looks inside the label.

// Survey submission errors. Wrapped with detail, test with errors.Is.
var (
	ErrUnknownQuestion  = errors.New("commsig: unknown survey question")
	ErrUnknownChoice    = errors.New("commsig: unknown survey choice")
	ErrIncompleteSurvey = errors.New("commsig: survey must cover every dimension")
)

// SurveyChoice binds a choice ID to the trait value it votes for.
type SurveyChoice struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// SurveyQuestion is one prompt in the built-in assessment. Each choice
// votes for one recognized value of the question's dimension.
type SurveyQuestion struct {
	ID        string                  `json:"id"`
	Dimension TraitDimension          `json:"dimension"`
	Prompt    string                  `json:"prompt"`
	Choices   map[string]SurveyChoice `json:"choices"`
}

// SurveyAnswer is one submitted answer.
type SurveyAnswer struct {
	QuestionID string `json:"question_id"`
	ChoiceID   string `json:"choice_id"`
}

// SurveyResult is the scored outcome of a full survey.
type SurveyResult struct {
	Traits    map[TraitDimension]string `json:"traits"`
	Signature string                    `json:"signature"`
}

// surveyQuestions is the built-in assessment: three questions per
// dimension, one choice per recognized value.
var surveyQuestions = []SurveyQuestion{
	{
		ID: "q1", Dimension: DimDrive,
		Prompt: "A new project lands on your desk. Your first move is to…",
		Choices: map[string]SurveyChoice{
			"a": {"start executing and adjust as you go", "action"},
			"b": {"gather background until the picture is clear", "research"},
			"c": {"get the right people in a room", "collaborate"},
			"d": {"design the process before any work starts", "optimize"},
		},
	},
	{
		ID: "q2", Dimension: DimDrive,
		Prompt: "A deadline gets pulled in by two weeks. You…",
		Choices: map[string]SurveyChoice{
			"a": {"cut scope and ship what matters", "action"},
			"b": {"re-verify the riskiest assumptions first", "research"},
			"c": {"renegotiate responsibilities across the team", "collaborate"},
			"d": {"rework the plan to remove wasted steps", "optimize"},
		},
	},
	{
		ID: "q3", Dimension: DimDrive,
		Prompt: "What earns your respect most in a coworker?",
		Choices: map[string]SurveyChoice{
			"a": {"a bias toward getting things done", "action"},
			"b": {"depth and rigor", "research"},
			"c": {"generosity with time and credit", "collaborate"},
			"d": {"consistently efficient execution", "optimize"},
		},
	},
	{
		ID: "q4", Dimension: DimExpression,
		Prompt: "In meetings you are usually the one who…",
		Choices: map[string]SurveyChoice{
			"a": {"states the conclusion up front", "direct"},
			"b": {"keeps the room energized", "animated"},
			"c": {"draws out the quiet voices", "attentive"},
			"d": {"summarizes carefully at the end", "measured"},
		},
	},
	{
		ID: "q5", Dimension: DimExpression,
		Prompt: "Your written updates tend to be…",
		Choices: map[string]SurveyChoice{
			"a": {"short and unambiguous", "direct"},
			"b": {"vivid, with plenty of color", "animated"},
			"c": {"tailored to what each reader needs", "attentive"},
			"d": {"precise and fully qualified", "measured"},
		},
	},
	{
		ID: "q6", Dimension: DimExpression,
		Prompt: "When you disagree with a decision, you…",
		Choices: map[string]SurveyChoice{
			"a": {"say so immediately", "direct"},
			"b": {"make the case with energy and stories", "animated"},
			"c": {"ask questions until the real concerns surface", "attentive"},
			"d": {"write up a careful counter-proposal", "measured"},
		},
	},
	{
		ID: "q7", Dimension: DimAdaptive,
		Prompt: "Plans changed overnight. Your reaction:",
		Choices: map[string]SurveyChoice{
			"a": {"fine, new plan", "flexible"},
			"b": {"keep the parts that still work", "steady"},
			"c": {"pause and re-plan properly", "deliberate"},
		},
	},
	{
		ID: "q8", Dimension: DimAdaptive,
		Prompt: "Ambiguity at work feels…",
		Choices: map[string]SurveyChoice{
			"a": {"energizing", "flexible"},
			"b": {"manageable with a stable routine", "steady"},
			"c": {"acceptable once mapped and bounded", "deliberate"},
		},
	},
	{
		ID: "q9", Dimension: DimAdaptive,
		Prompt: "A tool you rely on is being replaced. You…",
		Choices: map[string]SurveyChoice{
			"a": {"switch early and learn by using it", "flexible"},
			"b": {"run both until the new one proves itself", "steady"},
			"c": {"read the docs end to end before migrating", "deliberate"},
		},
	},
	{
		ID: "q10", Dimension: DimIntelligence,
		Prompt: "Faced with a hard problem, you start by…",
		Choices: map[string]SurveyChoice{
			"a": {"decomposing it into testable parts", "analytical"},
			"b": {"looking for an unexpected angle", "creative"},
			"c": {"finding what worked for someone else", "practical"},
			"d": {"asking how it fits the bigger picture", "strategic"},
		},
	},
	{
		ID: "q11", Dimension: DimIntelligence,
		Prompt: "The feedback you value most points at…",
		Choices: map[string]SurveyChoice{
			"a": {"holes in your reasoning", "analytical"},
			"b": {"places to be bolder", "creative"},
			"c": {"what to simplify", "practical"},
			"d": {"long-term consequences you missed", "strategic"},
		},
	},
	{
		ID: "q12", Dimension: DimIntelligence,
		Prompt: "Your favorite kind of win is…",
		Choices: map[string]SurveyChoice{
			"a": {"a clean root-cause finding", "analytical"},
			"b": {"an idea nobody saw coming", "creative"},
			"c": {"something shipped that just works", "practical"},
			"d": {"a bet that pays off a year later", "strategic"},
		},
	},
}

var surveyByID map[string]SurveyQuestion

func init() {
	surveyByID = make(map[string]SurveyQuestion, len(surveyQuestions))
	for _, q := range surveyQuestions {
		surveyByID[q.ID] = q
	}
}

// Survey returns the built-in question set. The choices maps are copied
// too, so callers can never reach the scoring tables.
func Survey() []SurveyQuestion {
	out := make([]SurveyQuestion, len(surveyQuestions))
	copy(out, surveyQuestions)
	for i := range out {
		choices := make(map[string]SurveyChoice, len(out[i].Choices))
		for id, choice := range out[i].Choices {
			choices[id] = choice
		}
		out[i].Choices = choices
	}
	return out
}

// ScoreSurvey tallies answers into one dominant value per dimension and
// derives the signature label. Ties resolve toward the earlier value in
// the dimension's canonical order. Every dimension must receive at least
// one vote.
func ScoreSurvey(answers []SurveyAnswer) (*SurveyResult, error) {
	votes := make(map[TraitDimension]map[string]int)
	for _, ans := range answers {
		q, ok := surveyByID[ans.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownQuestion, ans.QuestionID)
		}
		choice, ok := q.Choices[ans.ChoiceID]
		if !ok {
			return nil, fmt.Errorf("%w: question %q choice %q", ErrUnknownChoice, ans.QuestionID, ans.ChoiceID)
		}
		if votes[q.Dimension] == nil {
			votes[q.Dimension] = make(map[string]int)
		}
		votes[q.Dimension][choice.Value]++
	}

	traits := make(map[TraitDimension]string, len(traitValues))
	for _, dim := range Dimensions() {
		dimVotes := votes[dim]
		if len(dimVotes) == 0 {
			return nil, fmt.Errorf("%w: no answer for %s", ErrIncompleteSurvey, dim)
		}
		// Canonical order plus strict > keeps ties deterministic.
		best, bestCount := "", -1
		for _, value := range traitValues[dim] {
			if count := dimVotes[value]; count > bestCount {
				best, bestCount = value, count
			}
		}
		traits[dim] = best
	}

	return &SurveyResult{
		Traits:    traits,
		Signature: DeriveSignature(traits),
	}, nil
}

// signatureTitles compose the label from the dominant drive and expression
// values. Either value unrecognized means the default label.
var (
	driveTitles = map[string]string{
		"action":      "Driven",
		"research":    "Investigative",
		"collaborate": "Collaborative",
		"optimize":    "Systematic",
	}
	expressionTitles = map[string]string{
		"direct":    "Communicator",
		"animated":  "Storyteller",
		"attentive": "Listener",
		"measured":  "Advisor",
	}
)

// defaultSignature labels trait sets whose drive or expression value has
// no title entry.
const defaultSignature = "Balanced Communicator"

// DeriveSignature builds the signature label for a trait set.
func DeriveSignature(traits map[TraitDimension]string) string {
	adj, okAdj := driveTitles[traits[DimDrive]]
	noun, okNoun := expressionTitles[traits[DimExpression]]
	if !okAdj || !okNoun {
		return defaultSignature
	}
	return adj + " " + noun
}

// AnswersHash is a stable content hash over a user's normalized answers.
// The service uses it to make survey resubmission idempotent: the same
// user submitting the same answers maps to the same stored assessment.
func AnswersHash(userID string, answers []SurveyAnswer) uint64 {
	sorted := make([]SurveyAnswer, len(answers))
	copy(sorted, answers)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].QuestionID != sorted[j].QuestionID {
			return sorted[i].QuestionID < sorted[j].QuestionID
		}
		return sorted[i].ChoiceID < sorted[j].ChoiceID
	})

	h := xxhash.New()
	h.WriteString(userID)
	for _, ans := range sorted {
		h.WriteString("|")
		h.WriteString(ans.QuestionID)
		h.WriteString("=")
		h.WriteString(ans.ChoiceID)
	}
	return h.Sum64()
}
