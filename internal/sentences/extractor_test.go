package sentences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/go-questions/internal/errors"
	"github.com/gcbaptista/go-questions/internal/tokenizer"
	"github.com/gcbaptista/go-questions/model"
)

func texts(extracted []model.Sentence) []string {
	out := make([]string, len(extracted))
	for i, s := range extracted {
		out[i] = s.Text
	}
	return out
}

func TestExtract_SplitsPassagesAndSentences(t *testing.T) {
	ex := NewExtractor(tokenizer.Default(), IdentityText)

	docs := []model.Document{{
		ID:   "a.txt",
		Text: "Cat sat on mat. Dog ran far fast.\n\nBirds fly high!",
	}}

	got := ex.Extract(docs)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Cat sat on mat.", "Dog ran far fast.", "Birds fly high!"}, texts(got))
	assert.Equal(t, []string{"cat", "sat", "mat"}, got[0].Tokens)

	for i, s := range got {
		assert.Equal(t, "a.txt", s.DocumentID)
		assert.Equal(t, i, s.Position)
	}
}

func TestExtract_DropsSentencesWithoutWords(t *testing.T) {
	ex := NewExtractor(tokenizer.Default(), IdentityText)

	got := ex.Extract([]model.Document{{ID: "a.txt", Text: "It is. 42!\nCats purr."}})
	assert.Equal(t, []string{"Cats purr."}, texts(got))
	assert.Equal(t, 0, got[0].Position)
}

func TestExtract_AbbreviationsStayInSentence(t *testing.T) {
	ex := NewExtractor(tokenizer.Default(), IdentityText)

	got := ex.Extract([]model.Document{{
		ID:   "a.txt",
		Text: "Mr. Smith met Dr. Jones in Washington. They talked about e.g. neural networks.",
	}})
	require.Len(t, got, 2)
	assert.Equal(t, []string{
		"Mr. Smith met Dr. Jones in Washington.",
		"They talked about e.g. neural networks.",
	}, texts(got))
	assert.Equal(t, []string{"smith", "met", "jones", "washington"}, got[0].Tokens)
	assert.Equal(t, []string{"talked", "neural", "networks"}, got[1].Tokens)
}

func TestExtract_DocumentOrderIsKept(t *testing.T) {
	ex := NewExtractor(tokenizer.Default(), IdentityText)

	got := ex.Extract([]model.Document{
		{ID: "z.txt", Text: "Zebras graze."},
		{ID: "a.txt", Text: "Ants march."},
	})
	assert.Equal(t, []string{"Zebras graze.", "Ants march."}, texts(got))
}

func TestExtract_IdentityPolicies(t *testing.T) {
	docs := []model.Document{
		{ID: "a.txt", Text: "Cats purr. Dogs bark."},
		{ID: "b.txt", Text: "Dogs bark."},
	}

	t.Run("text collapses duplicates", func(t *testing.T) {
		ex := NewExtractor(tokenizer.Default(), IdentityText)
		got := ex.Extract(docs)

		require.Len(t, got, 2)
		assert.Equal(t, "a.txt", got[1].DocumentID, "first occurrence wins")
		assert.Len(t, ex.Collection(got), 2)
	})

	t.Run("position keeps duplicates", func(t *testing.T) {
		ex := NewExtractor(tokenizer.Default(), IdentityPosition)
		got := ex.Extract(docs)

		require.Len(t, got, 3)
		collection := ex.Collection(got)
		assert.Len(t, collection, 3)
		assert.Equal(t, []string{"dogs", "bark"}, collection["b.txt#0"])
	})
}

func TestExtract_Empty(t *testing.T) {
	ex := NewExtractor(tokenizer.Default(), "")

	assert.Equal(t, IdentityText, ex.Identity())
	got := ex.Extract(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		input   string
		want    Identity
		wantErr bool
	}{
		{"", IdentityText, false},
		{"text", IdentityText, false},
		{" Position ", IdentityPosition, false},
		{"hash", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseIdentity(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, internalErrors.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
