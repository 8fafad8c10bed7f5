package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/ai"
	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/table"
)

type stubCompleter struct {
	answer  ai.Answer
	err     error
	calls   int
	prompts []string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (ai.Answer, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	return s.answer, s.err
}

func testWorkbook() *table.Workbook {
	return &table.Workbook{Tables: []*table.Table{
		{
			Name:    "Sheet1",
			Columns: []string{"plot", "alpha"},
			Rows:    [][]string{{"A1", "12.5"}, {"A2", "11.8"}},
		},
	}}
}

func TestAskFullTurn(t *testing.T) {
	stub := &stubCompleter{answer: ai.Answer{Text: "42"}}
	sess := New(stub, nil, 0)
	sess.ReplaceData(testWorkbook())

	entry, err := sess.Ask(context.Background(), "What is the total?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if entry.Role != RoleAssistant || entry.Content != "42" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if stub.calls != 1 {
		t.Fatalf("expected 1 request, got %d", stub.calls)
	}
	p := stub.prompts[0]
	if !strings.Contains(p, "Sheet1") || !strings.Contains(p, "A1,12.5") {
		t.Fatalf("prompt missing serialized data:\n%s", p)
	}
	if !strings.Contains(p, "What is the total?") {
		t.Fatalf("prompt missing question:\n%s", p)
	}

	hist := sess.Transcript()
	if len(hist) != 2 {
		t.Fatalf("expected 2 transcript entries, got %d", len(hist))
	}
	if hist[0].Role != RoleUser || hist[0].Content != "What is the total?" {
		t.Fatalf("unexpected user entry: %+v", hist[0])
	}
	if hist[1].Role != RoleAssistant || hist[1].Content != "42" {
		t.Fatalf("unexpected assistant entry: %+v", hist[1])
	}
}

func TestAskRequestFailureBecomesAnswer(t *testing.T) {
	stub := &stubCompleter{err: &ai.RequestError{Err: errors.New("connection refused")}}
	sess := New(stub, nil, 0)
	sess.ReplaceData(testWorkbook())

	entry, err := sess.Ask(context.Background(), "q1")
	if err != nil {
		t.Fatalf("request failure must not propagate, got %v", err)
	}
	if !strings.Contains(entry.Content, "request failed") {
		t.Fatalf("expected failure text in entry, got %q", entry.Content)
	}

	// the session stays usable for the next turn
	stub.err = nil
	stub.answer = ai.Answer{Text: "ok"}
	entry, err = sess.Ask(context.Background(), "q2")
	if err != nil || entry.Content != "ok" {
		t.Fatalf("expected recovery on next turn, got %+v / %v", entry, err)
	}
	if got := len(sess.Transcript()); got != 4 {
		t.Fatalf("expected 4 transcript entries, got %d", got)
	}
}

func TestAskEmptyAnswer(t *testing.T) {
	stub := &stubCompleter{answer: ai.Answer{Empty: true}}
	sess := New(stub, nil, 0)
	sess.ReplaceData(testWorkbook())

	entry, err := sess.Ask(context.Background(), "q")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if entry.Content != emptyAnswerText {
		t.Fatalf("unexpected content: %q", entry.Content)
	}
}

func TestAskEmptyQuestion(t *testing.T) {
	stub := &stubCompleter{}
	sess := New(stub, nil, 0)
	sess.ReplaceData(testWorkbook())

	for _, q := range []string{"", "   ", "\t\n"} {
		if _, err := sess.Ask(context.Background(), q); !errors.Is(err, ErrEmptyQuestion) {
			t.Fatalf("expected ErrEmptyQuestion for %q, got %v", q, err)
		}
	}
	if stub.calls != 0 {
		t.Fatalf("blank questions must not reach the endpoint")
	}
	if len(sess.Transcript()) != 0 {
		t.Fatalf("blank questions must not advance the transcript")
	}
}

func TestAskWithoutData(t *testing.T) {
	stub := &stubCompleter{}
	sess := New(stub, nil, 0)

	if _, err := sess.Ask(context.Background(), "q"); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if stub.calls != 0 || len(sess.Transcript()) != 0 {
		t.Fatalf("missing data must not reach the endpoint or the transcript")
	}
}

func TestAskRespectsRowCap(t *testing.T) {
	stub := &stubCompleter{answer: ai.Answer{Text: "ok"}}
	sess := New(stub, nil, 1)
	sess.ReplaceData(testWorkbook())

	if _, err := sess.Ask(context.Background(), "q"); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	p := stub.prompts[0]
	if !strings.Contains(p, "showing 1 of 2 rows") {
		t.Fatalf("expected capped serialization:\n%s", p)
	}
	if strings.Contains(p, "A2,11.8") {
		t.Fatalf("row past the cap leaked into the prompt:\n%s", p)
	}
}

func TestAskAppliesSelection(t *testing.T) {
	wb := testWorkbook()
	wb.Tables = append(wb.Tables, &table.Table{
		Name:    "Sheet2",
		Columns: []string{"note"},
		Rows:    [][]string{{"ignored"}},
	})
	stub := &stubCompleter{answer: ai.Answer{Text: "ok"}}
	sess := New(stub, nil, 0)
	sess.ReplaceData(wb)
	sess.SetSelection([]string{"Sheet1"}, map[string][]string{"Sheet1": {"alpha"}})

	if _, err := sess.Ask(context.Background(), "q"); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	p := stub.prompts[0]
	if strings.Contains(p, "Sheet2") || strings.Contains(p, "ignored") {
		t.Fatalf("deselected sheet leaked into the prompt:\n%s", p)
	}
	if strings.Contains(p, "plot") {
		t.Fatalf("deselected column leaked into the prompt:\n%s", p)
	}
	if !strings.Contains(p, "alpha\n12.5\n11.8\n") {
		t.Fatalf("expected projected column data:\n%s", p)
	}
}

func TestReplaceDataResetsSelection(t *testing.T) {
	stub := &stubCompleter{answer: ai.Answer{Text: "ok"}}
	sess := New(stub, nil, 0)
	sess.ReplaceData(testWorkbook())
	sess.SetSelection([]string{"Sheet1"}, nil)

	sess.ReplaceData(&table.Workbook{Tables: []*table.Table{
		{Name: "Other", Columns: []string{"x"}, Rows: [][]string{{"1"}}},
	}})
	if _, err := sess.Ask(context.Background(), "q"); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !strings.Contains(stub.prompts[0], "Other") {
		t.Fatalf("stale selection survived data replacement:\n%s", stub.prompts[0])
	}
}

func TestTranscriptEntriesAreCopies(t *testing.T) {
	stub := &stubCompleter{answer: ai.Answer{Text: "ok"}}
	sess := New(stub, nil, 0)
	sess.ReplaceData(testWorkbook())
	if _, err := sess.Ask(context.Background(), "q"); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	hist := sess.Transcript()
	hist[0].Content = "mutated"
	if sess.Transcript()[0].Content != "q" {
		t.Fatalf("Transcript must return a copy")
	}
}
