package mutate

import (
	"errors"
	"reflect"
	"testing"

	"shoplist/internal/model"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want Action
	}{
		{"add milk", Add{Name: "milk"}},
		{"add  whole   wheat bread", Add{Name: "whole wheat bread"}},
		{`add "peanut  butter"`, Add{Name: "peanut  butter"}},
		{"toggle 2", Toggle{Index: 2}},
		{"check 0", Toggle{Index: 0}},
		{"rm 3", Delete{Index: 3}},
		{"delete 1", Delete{Index: 1}},
		{"edit 1 blood oranges", Edit{Index: 1, Name: "blood oranges"}},
		{`rename 0 'green apples'`, Edit{Index: 0, Name: "green apples"}},
		{"filter ap", Filter{Query: "ap"}},
		{"filter", Filter{Query: ""}},
		{"hide", SetHideChecked{Hide: true}},
		{"show", SetHideChecked{Hide: false}},
		{"hide-toggle", ToggleHideChecked{}},
		{"match fuzzy", SetMatch{Mode: model.MatchFuzzy}},
		{"clear", ClearChecked{}},
		{"  ADD Tea ", Add{Name: "Tea"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLine(tt.line)
			if err != nil {
				t.Fatalf("ParseLine(%q): %v", tt.line, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseLine(%q):\n got: %#v\nwant: %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseLine_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line    string
		unknown bool
	}{
		{line: ""},
		{line: "   "},
		{line: "add"},
		{line: "toggle"},
		{line: "toggle x"},
		{line: "toggle 1 2"},
		{line: "edit 1"},
		{line: "match"},
		{line: "match regex"},
		{line: `add "unterminated`},
		{line: "explode 1", unknown: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			_, err := ParseLine(tt.line)
			if err == nil {
				t.Fatalf("expected error for %q", tt.line)
			}
			var ue UnknownActionError
			var ae ArgError
			if tt.unknown && !errors.As(err, &ue) {
				t.Fatalf("expected UnknownActionError; got %T %v", err, err)
			}
			if !tt.unknown && !errors.As(err, &ae) {
				t.Fatalf("expected ArgError; got %T %v", err, err)
			}
		})
	}
}

func TestSplitWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{`a b  c`, []string{"a", "b", "c"}},
		{`edit 0 ""`, []string{"edit", "0", ""}},
		{`add it\'s`, []string{"add", "it's"}},
		{`add "say \"hi\""`, []string{"add", `say "hi"`}},
		{`add 'a\b'`, []string{"add", `a\b`}},
	}
	for _, tt := range tests {
		got, err := splitWords(tt.in)
		if err != nil {
			t.Fatalf("splitWords(%q): %v", tt.in, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("splitWords(%q):\n got: %#v\nwant: %#v", tt.in, got, tt.want)
		}
	}
}
