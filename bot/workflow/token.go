package workflow

import "unicode/utf8"

// Kind is the variant tag of a token. It is the prefix of the encoded form.
type Kind string

const (
	KindMatchChoice  Kind = "match"
	KindSaveWord     Kind = "save"
	KindSavedInfo    Kind = "saved"
	KindFlashCards   Kind = "fc"
	KindTutorialPage Kind = "tut"
	KindClear        Kind = "clear"
)

// Kinds lists every token variant in a stable order.
var Kinds = []Kind{KindMatchChoice, KindSaveWord, KindSavedInfo, KindFlashCards, KindTutorialPage, KindClear}

const (
	// MaxPayloadSize is the Telegram callback_data limit.
	MaxPayloadSize = 64
	// MaxSearchedWordSize caps the escaped searched word carried by lookup tokens.
	MaxSearchedWordSize = 32
	// MaxDrillWordSize caps each escaped word carried by a flash-card token.
	MaxDrillWordSize = 16
)

// Token is the workflow state serialized into a button.
// A nil pointer field is the explicit null of that field.
type Token interface {
	Kind() Kind
}

// MatchChoice is a pick among search results. A nil Choice is the "nothing selected" state.
type MatchChoice struct {
	Choice       *int64  `json:"choice"`
	SearchedWord *string `json:"searched_word"`
}

func (MatchChoice) Kind() Kind { return KindMatchChoice }

// SaveWord drives the save confirmation. A nil WordToSave navigates back to the results.
type SaveWord struct {
	WordToSave     *int64  `json:"word_to_save"`
	SearchedWord   *string `json:"searched_word"`
	ShouldContinue *bool   `json:"should_continue"`
}

func (SaveWord) Kind() Kind { return KindSaveWord }

// SavedInfo drives the saved word browser.
type SavedInfo struct {
	SavedID       *int64 `json:"saved_id"`
	WordToSee     *int64 `json:"word_to_see"`
	Back          *bool  `json:"back"`
	StartNotebook *bool  `json:"start_notebook"`
}

func (SavedInfo) Kind() Kind { return KindSavedInfo }

// FlashCards is the drill progress. Current is the index of the next question.
type FlashCards struct {
	Training         bool    `json:"training"`
	Current          int     `json:"current"`
	PreviousQuestion *string `json:"previous_question"`
	PreviousAnswer   *string `json:"previous_answer"`
}

func (FlashCards) Kind() Kind { return KindFlashCards }

// TutorialPage is an index into the tutorial content. Page -1 closes the tutorial.
type TutorialPage struct {
	Page int `json:"page"`
}

func (TutorialPage) Kind() Kind { return KindTutorialPage }

// TutorialDone is the terminal tutorial page.
const TutorialDone = -1

// Clear aborts any flow back to idle.
type Clear struct {
	Clear bool `json:"clear"`
}

func (Clear) Kind() Kind { return KindClear }

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// NewMatchChoice builds a MatchChoice with the searched word truncated to fit a button.
func NewMatchChoice(choice *int64, searchedWord *string) MatchChoice {
	return MatchChoice{Choice: choice, SearchedWord: truncatePtr(searchedWord, MaxSearchedWordSize)}
}

// NewSaveWord builds a SaveWord with the searched word truncated to fit a button.
func NewSaveWord(wordToSave *int64, searchedWord *string, shouldContinue *bool) SaveWord {
	return SaveWord{
		WordToSave:     wordToSave,
		SearchedWord:   truncatePtr(searchedWord, MaxSearchedWordSize),
		ShouldContinue: shouldContinue,
	}
}

// NewFlashCards builds a FlashCards token with both words truncated to fit a button.
// Both words go through the same cut, so equal words stay equal after truncation.
func NewFlashCards(training bool, current int, previousQuestion, previousAnswer *string) FlashCards {
	return FlashCards{
		Training:         training,
		Current:          current,
		PreviousQuestion: truncatePtr(previousQuestion, MaxDrillWordSize),
		PreviousAnswer:   truncatePtr(previousAnswer, MaxDrillWordSize),
	}
}

// TruncateText cuts s at a rune boundary so that its escaped form fits in limit bytes.
func TruncateText(s string, limit int) string {
	size := 0
	for i := 0; i < len(s); {
		r, width := utf8.DecodeRuneInString(s[i:])
		cost := width
		if r == escapeChar || r == fieldSeparator {
			cost++
		}
		if size+cost > limit {
			return s[:i]
		}
		size += cost
		i += width
	}
	return s
}

func truncatePtr(s *string, limit int) *string {
	if s == nil {
		return nil
	}
	return Ptr(TruncateText(*s, limit))
}
