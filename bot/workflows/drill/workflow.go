package drill

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"ChineseBee/bot/workflow"
	"ChineseBee/entity"
	"ChineseBee/internal/lib/sl"
)

// Workflow ID
const (
	WorkflowID workflow.WorkflowID = "drill"
)

// Route names
const (
	RouteStep = "drill.step"
	RouteEnd  = "drill.end"
)

const CommandFlashCards = "flash_cards"

// VocabService defines the backend calls used by the drill.
type VocabService interface {
	CanTrain(ctx context.Context, userID int64) (entity.Eligibility, error)
	SavedWords(ctx context.Context, userID int64) ([]entity.SavedWord, error)
}

// Shuffler reorders the answer candidates in place.
type Shuffler func(words []entity.SavedWord)

// RandomShuffle uses the unseeded global source, so every step gets a new order.
func RandomShuffle(words []entity.SavedWord) {
	rand.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}

// DrillWorkflow runs flash-card drills over the saved words.
type DrillWorkflow struct {
	vocab    VocabService
	renderer *workflow.Renderer
	shuffle  Shuffler
	log      *slog.Logger
}

func NewDrillWorkflow(vocab VocabService, renderer *workflow.Renderer, log *slog.Logger) *DrillWorkflow {
	return &DrillWorkflow{
		vocab:    vocab,
		renderer: renderer,
		shuffle:  RandomShuffle,
		log:      log.With(sl.Module("drill")),
	}
}

// WithShuffler replaces the answer order source.
func (w *DrillWorkflow) WithShuffler(s Shuffler) *DrillWorkflow {
	w.shuffle = s
	return w
}

func (w *DrillWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

func (w *DrillWorkflow) Commands() []workflow.Command {
	return []workflow.Command{
		{Name: CommandFlashCards, Description: "Тренировка с карточками", Handle: w.handleEntry},
	}
}

func (w *DrillWorkflow) Routes() []workflow.Route {
	return []workflow.Route{
		{Kind: workflow.KindFlashCards, Name: RouteStep, Match: isStep, Handle: w.handleStep},
		{Kind: workflow.KindFlashCards, Name: RouteEnd, Match: isEnd, Handle: w.handleEnd},
	}
}

func isStep(t workflow.Token) bool {
	return t.(workflow.FlashCards).Training
}

func isEnd(t workflow.Token) bool {
	return !t.(workflow.FlashCards).Training
}
