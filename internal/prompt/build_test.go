package prompt

import (
	"strings"
	"testing"
)

func TestBuildContainsInputsVerbatim(t *testing.T) {
	serialized := "=== Sheet1 (showing 2 of 2 rows) ===\na,b\n1,2\n3,4\n"
	question := "  What is the total?  " // internal whitespace must survive
	out := Build(serialized, question)
	if !strings.Contains(out, serialized) {
		t.Fatalf("serialized block altered:\n%s", out)
	}
	if !strings.Contains(out, question) {
		t.Fatalf("question altered:\n%s", out)
	}
}

func TestBuildTemplate(t *testing.T) {
	out := Build("DATA", "Q")
	want := "You are given this CSV data:\n\nDATA\n\nAnswer the following question clearly and directly:\n\nQ\n"
	if out != want {
		t.Fatalf("unexpected prompt:\n%q\nwant:\n%q", out, want)
	}
}

func TestBuildIsPure(t *testing.T) {
	a := Build("s", "q")
	b := Build("s", "q")
	if a != b {
		t.Fatalf("Build not deterministic")
	}
}
