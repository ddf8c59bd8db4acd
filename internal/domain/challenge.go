package domain

import "time"

// Challenge is a single configured challenge question.
type Challenge struct {
	Text      string `json:"text"`
	Required  bool   `json:"required,omitempty"`
	MinLength int    `json:"min_length,omitempty"`
	MaxLength int    `json:"max_length,omitempty"`
}

// ChallengeSet is the set of challenges a profile asks users to answer.
type ChallengeSet struct {
	Challenges []Challenge `json:"challenges"`
	// MinRandomRequired is how many optional challenges must carry answers in
	// addition to every required one.
	MinRandomRequired int `json:"min_random_required,omitempty"`
}

// RequiredCount returns the number of challenges marked required.
func (c ChallengeSet) RequiredCount() int {
	n := 0
	for _, ch := range c.Challenges {
		if ch.Required {
			n++
		}
	}
	return n
}

// ChallengeProfile is the resolved challenge configuration applicable to one
// identity.
type ChallengeProfile struct {
	ID           string
	DisplayName  string
	ChallengeSet ChallengeSet
}

// IsZero reports whether no challenge profile matched.
func (p ChallengeProfile) IsZero() bool {
	return p.ID == ""
}

// ResponseAnswer is one stored answer. Answers are stored hashed; the clear
// text never leaves the setup flow.
type ResponseAnswer struct {
	ChallengeText string
	AnswerHash    string
}

// ResponseInfo is the opaque per-user challenge-response record read from the
// credential store.
type ResponseInfo struct {
	Identity   Identity
	Answers    []ResponseAnswer
	RecordedAt time.Time
}

// AnswerFor returns the stored answer for a challenge text, if any.
func (r *ResponseInfo) AnswerFor(text string) (ResponseAnswer, bool) {
	if r == nil {
		return ResponseAnswer{}, false
	}
	for _, a := range r.Answers {
		if a.ChallengeText == text {
			return a, true
		}
	}
	return ResponseAnswer{}, false
}
