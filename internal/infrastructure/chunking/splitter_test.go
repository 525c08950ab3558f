package chunking

import (
	"reflect"
	"testing"
)

func TestSplitBasicSentences(t *testing.T) {
	s := NewSentenceSplitter()

	got := s.Split("The sun is hot. The moon is cold.")
	want := []string{"The sun is hot.", "The moon is cold."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split() = %q, want %q", got, want)
	}
}

func TestSplitKeepsTerminatorRunsAndClosers(t *testing.T) {
	s := NewSentenceSplitter()

	got := s.Split(`Really?! He said "stop." Then he left...`)
	want := []string{"Really?!", `He said "stop."`, "Then he left..."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split() = %q, want %q", got, want)
	}
}

func TestSplitSkipsAbbreviationsAndInitials(t *testing.T) {
	s := NewSentenceSplitter()

	got := s.Split("Dr. Smith met J. R. Tolkien in Oxford. They talked, e.g. about maps.")
	want := []string{"Dr. Smith met J. R. Tolkien in Oxford.", "They talked, e.g. about maps."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split() = %q, want %q", got, want)
	}
}

func TestSplitDoesNotBreakInsideNumbers(t *testing.T) {
	s := NewSentenceSplitter()

	got := s.Split("Pi is about 3.14 in value. Done")
	want := []string{"Pi is about 3.14 in value.", "Done"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split() = %q, want %q", got, want)
	}
}

func TestSplitExtraAbbreviations(t *testing.T) {
	s := NewSentenceSplitter("Approx.")

	got := s.Split("It weighs approx. ten tons.")
	if len(got) != 1 {
		t.Fatalf("expected single sentence, got %q", got)
	}
}

func TestSplitEmptyAndBlank(t *testing.T) {
	s := NewSentenceSplitter()

	if got := s.Split(""); len(got) != 0 {
		t.Fatalf("expected nil for empty input, got %q", got)
	}
	if got := s.Split("   \t "); len(got) != 0 {
		t.Fatalf("expected nothing for blank input, got %q", got)
	}
}

func TestSplitBreaksAfterOrdinaryWordsThatLookLikeAbbreviations(t *testing.T) {
	s := NewSentenceSplitter()

	cases := map[string][]string{
		"He said no. She left anyway.":   {"He said no.", "She left anyway."},
		"We met in the co. It was fun.":  {"We met in the co.", "It was fun."},
		"Prices fell in Dec. Then rose.": {"Prices fell in Dec.", "Then rose."},
	}
	for input, want := range cases {
		if got := s.Split(input); !reflect.DeepEqual(got, want) {
			t.Fatalf("Split(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSplitKeepsWeakAbbreviationsBeforeNumbersAndLowercase(t *testing.T) {
	s := NewSentenceSplitter()

	cases := map[string][]string{
		"See item No. 5 for details.":       {"See item No. 5 for details."},
		"It opened on Dec. 3 in Rome.":      {"It opened on Dec. 3 in Rome."},
		"Smith et al. found it. Then more.": {"Smith et al. found it.", "Then more."},
	}
	for input, want := range cases {
		if got := s.Split(input); !reflect.DeepEqual(got, want) {
			t.Fatalf("Split(%q) = %q, want %q", input, got, want)
		}
	}
}
