package vector

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name      string
		questions []string
		want      error
	}{
		{"nil questions", nil, ErrEmptyCorpus},
		{"empty questions", []string{}, ErrEmptyCorpus},
		{"no terms", []string{"a", "?", "i"}, ErrEmptyVocabulary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix, err := Build(tt.questions)
			if !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
			if ix != nil {
				t.Error("expected nil index on error")
			}
		})
	}
}

func TestBuild_SmoothedIDF(t *testing.T) {
	ix, err := Build([]string{"hello world", "hello"})
	if err != nil {
		t.Fatal(err)
	}
	if ix.Size() != 2 {
		t.Errorf("Size=%d, want 2", ix.Size())
	}
	if ix.VocabularySize() != 2 {
		t.Errorf("VocabularySize=%d, want 2", ix.VocabularySize())
	}
	hello, ok := ix.IDF("hello")
	if !ok || math.Abs(hello-1) > tolerance {
		t.Errorf("idf(hello) = %v, %v; want 1", hello, ok)
	}
	world, _ := ix.IDF("world")
	if want := math.Log(3.0/2.0) + 1; math.Abs(world-want) > tolerance {
		t.Errorf("idf(world) = %v, want %v", world, want)
	}
	if _, ok := ix.IDF("missing"); ok {
		t.Error("unexpected idf for out-of-vocabulary term")
	}
}

func TestBuild_UnitVectors(t *testing.T) {
	questions := []string{"what is python", "what is machine learning", "how to make coffee", "?"}
	ix, err := Build(questions)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if n := Norm(ix.Vector(i)); math.Abs(n-1) > tolerance {
			t.Errorf("vector %d norm = %v, want 1", i, n)
		}
	}
	if !ix.Vector(3).IsZero() {
		t.Error("question without terms should have a zero vector")
	}
}

func TestIndex_Transform(t *testing.T) {
	ix, err := Build([]string{"tell me a joke", "what is python"})
	if err != nil {
		t.Fatal(err)
	}
	if v := ix.Transform("completely unrelated words"); !v.IsZero() {
		t.Errorf("expected zero vector for out-of-vocabulary query, got %+v", v)
	}
	v := ix.Transform("what is python")
	if got := Cosine(v, ix.Vector(1)); math.Abs(got-1) > tolerance {
		t.Errorf("identical text cosine = %v, want 1", got)
	}
	if got := Cosine(v, ix.Vector(0)); got != 0 {
		t.Errorf("disjoint text cosine = %v, want 0", got)
	}
}

func TestIndex_Terms(t *testing.T) {
	ix, err := Build([]string{"beta alpha", "gamma alpha"})
	if err != nil {
		t.Fatal(err)
	}
	terms := ix.Terms()
	want := []string{"alpha", "beta", "gamma"}
	if len(terms) != len(want) {
		t.Fatalf("Terms() = %v, want %v", terms, want)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Errorf("Terms()[%d] = %q, want %q", i, terms[i], want[i])
		}
	}
}

func TestIndex_NilAccessors(t *testing.T) {
	var ix *Index
	if ix.Size() != 0 || ix.VocabularySize() != 0 {
		t.Error("nil index should report zero sizes")
	}
}
