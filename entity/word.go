package entity

import "strings"

// Match is one search hit returned by the vocabulary backend.
type Match struct {
	ID      int64  `json:"id"`
	Chinese string `json:"chinese"`
	Pinyin  string `json:"pinyin"`
	English string `json:"english"`
	Russian string `json:"russian"`
	Level   int    `json:"hsk_level"`
}

// Label is the text shown on the match button.
func (m Match) Label() string {
	return m.Chinese + " - " + m.Russian
}

// SavedWord is an entry of the user's study set.
type SavedWord struct {
	SavedID int64  `json:"saved_id"`
	WordID  int64  `json:"word_id"`
	Chinese string `json:"chinese"`
	Russian string `json:"russian"`
}

func (w SavedWord) Label() string {
	return w.Chinese + " - " + w.Russian
}

// Detail is a single labelled attribute of a word.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Details keeps the attributes in the order the backend sent them.
type Details []Detail

func (d Details) String() string {
	lines := make([]string, 0, len(d))
	for _, item := range d {
		lines = append(lines, item.Label+": "+item.Value)
	}
	return strings.Join(lines, "\n")
}

// Eligibility tells whether a user can start a flash-card drill.
type Eligibility struct {
	CanLearn bool   `json:"can_learn"`
	Message  string `json:"msg"`
}
