// Package session runs the ask/answer loop shared by the console and
// web front-ends: one question at a time against the loaded tables.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/ai"
	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/prompt"
	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/table"
)

// Completer is the single operation the session needs from the remote
// endpoint.
type Completer interface {
	Complete(ctx context.Context, prompt string) (ai.Answer, error)
}

var (
	// ErrEmptyQuestion rejects blank input before any request is built.
	ErrEmptyQuestion = errors.New("question is empty")
	// ErrNoData rejects questions while no tables are loaded.
	ErrNoData = errors.New("no data loaded")
)

// emptyAnswerText is shown when the request succeeded but carried no
// usable text. Worded so it cannot be mistaken for a request failure.
const emptyAnswerText = "The request succeeded but returned no answer text."

// Session owns one transcript, one data view, and one completion client
// handle. One question is processed to completion before the next is
// accepted; Ask serializes concurrent callers.
type Session struct {
	ID string

	mu         sync.Mutex
	wb         *table.Workbook
	rowCap     int
	sheets     []string            // selected sheet names; empty = all
	cols       map[string][]string // per-sheet column selection
	completer  Completer
	log        *zap.Logger
	transcript Transcript
}

func New(c Completer, log *zap.Logger, rowCap int) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if rowCap <= 0 {
		rowCap = prompt.DefaultRowCap
	}
	return &Session{
		ID:        uuid.NewString(),
		rowCap:    rowCap,
		completer: c,
		log:       log,
	}
}

// ReplaceData swaps in a freshly loaded workbook, dropping any previous
// tables and selection. The transcript is kept.
func (s *Session) ReplaceData(wb *table.Workbook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wb = wb
	s.sheets = nil
	s.cols = nil
}

func (s *Session) HasData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wb != nil
}

func (s *Session) Workbook() *table.Workbook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wb
}

// SetRowCap bounds data rows per table in the serialized block.
func (s *Session) SetRowCap(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n >= 0 {
		s.rowCap = n
	}
}

func (s *Session) RowCap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rowCap
}

// SetSelection narrows which sheets and columns feed the prompt. Empty
// sheets means all sheets; a missing cols entry means all columns.
func (s *Session) SetSelection(sheets []string, cols map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets = sheets
	s.cols = cols
}

// view applies the current selection to the workbook. Caller holds mu.
func (s *Session) view() *table.Workbook {
	if s.wb == nil {
		return nil
	}
	if len(s.sheets) == 0 && len(s.cols) == 0 {
		return s.wb
	}
	keep := func(name string) bool {
		if len(s.sheets) == 0 {
			return true
		}
		for _, n := range s.sheets {
			if n == name {
				return true
			}
		}
		return false
	}
	out := &table.Workbook{}
	for _, t := range s.wb.Tables {
		if !keep(t.Name) {
			continue
		}
		out.Tables = append(out.Tables, t.Select(s.cols[t.Name]))
	}
	return out
}

// Transcript returns a copy of the session history.
func (s *Session) Transcript() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Entries()
}

// Ask runs one full turn: serialize the data view, build the prompt,
// call the endpoint, and append both the question and the outcome to
// the transcript. Request failures become the assistant entry for the
// turn; they never propagate and never end the session. Only blank
// questions and a missing data set are rejected up front, with no
// transcript advance.
func (s *Session) Ask(ctx context.Context, question string) (Entry, error) {
	if strings.TrimSpace(question) == "" {
		return Entry{}, ErrEmptyQuestion
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wb == nil {
		return Entry{}, ErrNoData
	}

	serialized := prompt.Serialize(s.view(), s.rowCap)
	p := prompt.Build(serialized, question)
	s.transcript.Append(RoleUser, question)

	s.log.Info("sending request",
		zap.String("session", s.ID),
		zap.Int("prompt_tokens_est", prompt.EstimateTokens(p)),
	)

	var content string
	answer, err := s.completer.Complete(ctx, p)
	switch {
	case err != nil:
		s.log.Warn("request failed", zap.String("session", s.ID), zap.Error(err))
		content = err.Error()
	case answer.Empty:
		content = emptyAnswerText
	default:
		content = answer.Text
	}
	return s.transcript.Append(RoleAssistant, content), nil
}
