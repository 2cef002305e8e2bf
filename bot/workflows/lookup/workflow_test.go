package lookup_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"ChineseBee/bot/workflow"
	"ChineseBee/bot/workflow/ui"
	"ChineseBee/bot/workflow/workflowtest"
	"ChineseBee/bot/workflows/lookup"
	"ChineseBee/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVocab struct {
	matches  []entity.Match
	details  entity.Details
	err      error
	searches []string
	saved    []int64
}

func (f *fakeVocab) Search(_ context.Context, word string) ([]entity.Match, error) {
	f.searches = append(f.searches, word)
	return f.matches, f.err
}

func (f *fakeVocab) Details(_ context.Context, _ int64) (entity.Details, error) {
	return f.details, f.err
}

func (f *fakeVocab) SaveWord(_ context.Context, _ int64, wordID int64) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, wordID)
	return nil
}

type fixture struct {
	vocab    *fakeVocab
	msg      *workflowtest.Messenger
	sessions *workflow.MemorySessionStore
	router   *workflow.Router
}

func newFixture() *fixture {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{
		vocab: &fakeVocab{matches: []entity.Match{
			{ID: 1, Chinese: "你", Russian: "ты"},
			{ID: 2, Chinese: "你好", Russian: "привет"},
		}},
		msg:      workflowtest.NewMessenger(),
		sessions: workflow.NewMemorySessionStore(),
	}
	renderer := workflow.NewRenderer(f.msg, log)
	f.router = workflow.NewRouter(renderer, f.sessions, log)
	f.router.RegisterWorkflow(lookup.NewLookupWorkflow(f.vocab, renderer, f.sessions, log))
	return f
}

func (f *fixture) marker(t *testing.T) workflow.Marker {
	t.Helper()
	m, err := f.sessions.Load(context.Background(), workflowtest.ChatID, workflowtest.UserID)
	require.NoError(t, err)
	return m
}

func (f *fixture) press(t *testing.T, btn workflow.Button) {
	t.Helper()
	require.NoError(t, f.router.HandleCallback(context.Background(), workflowtest.PressEvent(t, btn)))
}

func TestRoutesAreExclusiveAndExhaustive(t *testing.T) {
	f := newFixture()

	ints := []*int64{nil, workflow.Ptr(int64(0)), workflow.Ptr(int64(5))}
	strs := []*string{nil, workflow.Ptr(""), workflow.Ptr("你")}
	bools := []*bool{nil, workflow.Ptr(true), workflow.Ptr(false)}

	var tokens []workflow.Token
	for _, i := range ints {
		for _, s := range strs {
			tokens = append(tokens, workflow.MatchChoice{Choice: i, SearchedWord: s})
			for _, b := range bools {
				tokens = append(tokens, workflow.SaveWord{WordToSave: i, SearchedWord: s, ShouldContinue: b})
			}
		}
	}
	assert.NoError(t, f.router.Verify(tokens))
}

func TestEntrySetsMarker(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.router.HandleCommand(context.Background(), workflowtest.CommandEvent(lookup.CommandSearch)))

	assert.Equal(t, workflow.MarkerAwaitingSearch, f.marker(t))
	screen := f.msg.Screen(t)
	assert.Equal(t, workflowtest.MethodSendText, screen.Method)
	assert.Equal(t, ui.TextSearchPrompt, screen.Text)
}

func TestSearchRendersMatchesAndBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	require.NoError(t, f.sessions.Save(ctx, workflowtest.ChatID, workflowtest.UserID, workflow.MarkerAwaitingSearch))

	require.NoError(t, f.router.HandleText(ctx, workflowtest.TextEvent("你")))

	screen := f.msg.Screen(t)
	assert.Equal(t, lookup.TextFound, screen.Text)
	buttons := workflowtest.Flatten(screen.Buttons)
	require.Len(t, buttons, 3)
	assert.Equal(t, "你 - ты", buttons[0].Text)

	tokens := workflowtest.Tokens(t, screen.Buttons)
	assert.Equal(t, workflow.MatchChoice{Choice: workflow.Ptr(int64(1)), SearchedWord: workflow.Ptr("你")}, tokens[0])
	assert.Equal(t, workflow.MatchChoice{Choice: workflow.Ptr(int64(2)), SearchedWord: workflow.Ptr("你")}, tokens[1])
	assert.Equal(t, workflow.MatchChoice{SearchedWord: workflow.Ptr("你")}, tokens[2])
	assert.Equal(t, workflow.MarkerAwaitingSearch, f.marker(t), "marker stays for the next word")

	f.press(t, buttons[2])
	assert.Equal(t, []string{"你", "你"}, f.vocab.searches, "back re-invokes the same search")

	again := f.msg.Screen(t)
	assert.Equal(t, workflowtest.MethodEditText, again.Method)
	assert.Equal(t, lookup.TextPickOrType, again.Text)
	last := workflowtest.Tokens(t, again.Buttons)
	assert.Equal(t, workflow.Clear{Clear: true}, last[len(last)-1])
}

func TestRejectWithoutWord(t *testing.T) {
	f := newFixture()

	f.press(t, workflow.Button{Data: "match::"})

	screen := f.msg.Screen(t)
	assert.Equal(t, lookup.TextTypeAnother, screen.Text)
	assert.Equal(t, []workflow.Token{workflow.Clear{Clear: true}}, workflowtest.Tokens(t, screen.Buttons))
	assert.Empty(t, f.vocab.searches)
	assert.Equal(t, workflow.MarkerAwaitingSearch, f.marker(t))
}

func TestSearchNothingFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.vocab.matches = nil
	require.NoError(t, f.sessions.Save(ctx, workflowtest.ChatID, workflowtest.UserID, workflow.MarkerAwaitingSearch))

	require.NoError(t, f.router.HandleText(ctx, workflowtest.TextEvent("zzz")))

	sent := f.msg.Find(workflowtest.MethodSendText)
	require.Len(t, sent, 1)
	assert.Equal(t, lookup.TextNothingFound, sent[0].Text)
	assert.Equal(t, workflow.MarkerAwaitingSearch, f.marker(t))
}

func TestDetailSaveAndBack(t *testing.T) {
	f := newFixture()
	f.vocab.details = entity.Details{{Label: "Иероглиф", Value: "你"}, {Label: "Перевод", Value: "ты"}}

	detail, err := ui.TokenButton("你 - ты", workflow.NewMatchChoice(workflow.Ptr(int64(1)), workflow.Ptr("你")))
	require.NoError(t, err)
	f.press(t, detail)

	screen := f.msg.Screen(t)
	assert.Equal(t, "Иероглиф: 你\nПеревод: ты", screen.Text)
	assert.Equal(t, []workflow.Token{
		workflow.SaveWord{WordToSave: workflow.Ptr(int64(1)), SearchedWord: workflow.Ptr("你")},
		workflow.SaveWord{SearchedWord: workflow.Ptr("你")},
	}, workflowtest.Tokens(t, screen.Buttons))

	f.press(t, workflowtest.ButtonByText(t, screen.Buttons, lookup.BtnSave))
	assert.Equal(t, []int64{1}, f.vocab.saved)

	saved := f.msg.Screen(t)
	assert.Equal(t, lookup.TextSaved, saved.Text)
	assert.Equal(t, []workflow.Token{
		workflow.SaveWord{ShouldContinue: workflow.Ptr(true)},
		workflow.SaveWord{SearchedWord: workflow.Ptr("你")},
		workflow.Clear{Clear: true},
	}, workflowtest.Tokens(t, saved.Buttons))

	f.press(t, workflowtest.ButtonByText(t, saved.Buttons, lookup.BtnBackToResults))
	assert.Equal(t, []string{"你"}, f.vocab.searches)
	assert.Equal(t, lookup.TextFound, f.msg.Screen(t).Text)
}

func TestContinueReentersSearch(t *testing.T) {
	f := newFixture()

	btn, err := ui.TokenButton(lookup.BtnContinue, workflow.NewSaveWord(nil, nil, workflow.Ptr(true)))
	require.NoError(t, err)
	f.press(t, btn)

	assert.Equal(t, workflow.MarkerAwaitingSearch, f.marker(t))
	assert.Equal(t, ui.TextSearchPrompt, f.msg.Screen(t).Text)
}

func TestBackendFailureShowsNotice(t *testing.T) {
	f := newFixture()
	f.vocab.err = errors.New("backend failure")

	btn, err := ui.TokenButton("save", workflow.NewSaveWord(workflow.Ptr(int64(1)), workflow.Ptr("你"), nil))
	require.NoError(t, err)
	f.press(t, btn)

	screen := f.msg.Screen(t)
	assert.Equal(t, ui.TextBackendFailure, screen.Text)
	assert.Empty(t, screen.Buttons)
	assert.Empty(t, f.vocab.saved)
}
