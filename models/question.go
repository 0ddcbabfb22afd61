package models

// QuestionType distinguishes the two kinds of quiz items the generator produces.
type QuestionType string

const (
	TypeMCQ       QuestionType = "mcq"
	TypeTrueFalse QuestionType = "tf"
)

// Candidate is a raw, unvalidated question object as returned by the LLM.
// It matches the JSON template the model is asked to fill:
// {"type":"mcq"|"tf","question":"...","options":["..",".."],"correct":0}
type Candidate struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

// Question is a validated, canonicalized quiz item. For "tf" it has
// exactly the two canonical true/false options; for "mcq" exactly four
// options. Correct is always a valid index into Options.
type Question struct {
	Type     QuestionType `json:"type"`
	Question string       `json:"question"`
	Options  []string     `json:"options"`
	Correct  int          `json:"correct"`
}
