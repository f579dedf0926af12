package moderation

import (
	"bytes"
	"encoding/json"
)

// CategoryScore is the judgement of a single category.
type CategoryScore struct {
	Category    string  `json:"-"`
	Score       float64 `json:"score"`
	Threshold   float64 `json:"threshold"`
	IsViolation bool    `json:"is_violation"`
}

// Categories keeps category scores in evaluation order. It marshals to a JSON
// object whose keys appear in that same order.
type Categories []CategoryScore

// Get returns the score for category, if present.
func (c Categories) Get(category string) (CategoryScore, bool) {
	for _, cs := range c {
		if cs.Category == category {
			return cs, true
		}
	}
	return CategoryScore{}, false
}

// Violations returns the violating category names in evaluation order.
func (c Categories) Violations() []string {
	var names []string
	for _, cs := range c {
		if cs.IsViolation {
			names = append(names, cs.Category)
		}
	}
	return names
}

func (c Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cs := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cs.Category)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(cs)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Verdict is the outcome of judging one submission.
type Verdict struct {
	IsApproved bool       `json:"is_approved"`
	Categories Categories `json:"categories"`
	Reason     string     `json:"reason"`
}
