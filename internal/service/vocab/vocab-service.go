package vocab

import (
	"ChineseBee/entity"
	"ChineseBee/internal/config"
	"ChineseBee/internal/lib/sl"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// ErrBackendFailure covers transport errors, non-2xx statuses and {success:false} answers.
var ErrBackendFailure = errors.New("backend failure")

type Service struct {
	client *resty.Client
	log    *slog.Logger
}

func NewVocabService(conf *config.Config, logger *slog.Logger) *Service {
	return New(conf.Backend.BaseURL, conf.Backend.Timeout, logger)
}

func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)

	return &Service{
		client: client,
		log:    logger.With(sl.Module("vocab service")),
	}
}

// Search returns the dictionary matches for a word.
func (s *Service) Search(ctx context.Context, word string) ([]entity.Match, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("word", word).
		Get("/chinese-match/{word}")
	body, err := s.check("search", resp, err)
	if err != nil {
		return nil, err
	}

	var matches []entity.Match
	if err = decodeField(body, "match", &matches); err != nil {
		return nil, fmt.Errorf("%w: search: %w", ErrBackendFailure, err)
	}

	s.log.With(
		slog.String("word", word),
		slog.Int("matches", len(matches)),
	).Debug("search")
	return matches, nil
}

// Details returns the word attributes in the order the backend sent them.
func (s *Service) Details(ctx context.Context, wordID int64) (entity.Details, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(wordID, 10)).
		Get("/word-details/{id}")
	body, err := s.check("details", resp, err)
	if err != nil {
		return nil, err
	}

	result := gjson.GetBytes(body, "details")
	if !result.IsObject() {
		return nil, fmt.Errorf("%w: details: not an object", ErrBackendFailure)
	}

	var details entity.Details
	result.ForEach(func(key, value gjson.Result) bool {
		details = append(details, entity.Detail{Label: key.String(), Value: value.String()})
		return true
	})
	return details, nil
}

// SavedWords returns the study set of a user.
func (s *Service) SavedWords(ctx context.Context, userID int64) ([]entity.SavedWord, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("user_id", strconv.FormatInt(userID, 10)).
		Get("/saved-words")
	body, err := s.check("saved words", resp, err)
	if err != nil {
		return nil, err
	}

	var words []entity.SavedWord
	if err = decodeField(body, "saved_words", &words); err != nil {
		return nil, fmt.Errorf("%w: saved words: %w", ErrBackendFailure, err)
	}
	return words, nil
}

// SaveWord adds a word to the study set of a user.
func (s *Service) SaveWord(ctx context.Context, userID, wordID int64) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"user_id": strconv.FormatInt(userID, 10),
			"word_id": strconv.FormatInt(wordID, 10),
		}).
		Post("/new-word")
	_, err = s.check("save word", resp, err)
	return err
}

// DeleteSaved removes an entry from the study set.
func (s *Service) DeleteSaved(ctx context.Context, savedID int64) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("saved_id", strconv.FormatInt(savedID, 10)).
		Delete("/saved_word")
	_, err = s.check("delete saved", resp, err)
	return err
}

// CanTrain asks whether the user has enough saved words for a drill.
func (s *Service) CanTrain(ctx context.Context, userID int64) (entity.Eligibility, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("user_id", strconv.FormatInt(userID, 10)).
		Get("/can-train")
	body, err := s.check("can train", resp, err)
	if err != nil {
		return entity.Eligibility{}, err
	}

	return entity.Eligibility{
		CanLearn: gjson.GetBytes(body, "can_learn").Bool(),
		Message:  gjson.GetBytes(body, "msg").String(),
	}, nil
}

// check turns every kind of failed call into ErrBackendFailure and returns the body otherwise.
func (s *Service) check(op string, resp *resty.Response, err error) ([]byte, error) {
	if err != nil {
		s.log.With(slog.String("op", op), sl.Err(err)).Warn("backend request")
		return nil, fmt.Errorf("%w: %s: %w", ErrBackendFailure, op, err)
	}
	if resp.IsError() {
		s.log.With(
			slog.String("op", op),
			slog.Int("status", resp.StatusCode()),
		).Warn("backend status")
		return nil, fmt.Errorf("%w: %s: status %d", ErrBackendFailure, op, resp.StatusCode())
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: %s: invalid json", ErrBackendFailure, op)
	}
	if !gjson.GetBytes(body, "success").Bool() {
		msg := gjson.GetBytes(body, "msg").String()
		s.log.With(slog.String("op", op), slog.String("msg", msg)).Debug("backend refused")
		return nil, fmt.Errorf("%w: %s: success=false %s", ErrBackendFailure, op, msg)
	}
	return body, nil
}

func decodeField(body []byte, path string, v any) error {
	result := gjson.GetBytes(body, path)
	if !result.Exists() || result.Type == gjson.Null {
		return nil
	}
	return json.Unmarshal([]byte(result.Raw), v)
}
