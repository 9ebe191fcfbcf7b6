package engine

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gcbaptista/go-questions/config"
	"github.com/gcbaptista/go-questions/index"
	internalErrors "github.com/gcbaptista/go-questions/internal/errors"
	"github.com/gcbaptista/go-questions/internal/search"
	"github.com/gcbaptista/go-questions/internal/sentences"
	"github.com/gcbaptista/go-questions/internal/tokenizer"
	"github.com/gcbaptista/go-questions/model"
	"github.com/gcbaptista/go-questions/services"
	"github.com/gcbaptista/go-questions/store"
)

// Engine answers queries against one corpus.
// It implements services.Answerer, services.QueryNormalizer, services.Fingerprinter
// and services.CorpusInspector.
// Everything it holds is built in New and only read afterwards, so Answer may be called concurrently.
type Engine struct {
	settings    config.PipelineSettings
	tokenizer   *tokenizer.Tokenizer
	extractor   *sentences.Extractor
	index       *index.CorpusIndex
	store       *store.DocumentStore
	fileIDFs    search.IDFTable
	fingerprint string
	logger      *logrus.Entry
}

// New tokenizes docs, computes document IDFs and returns a ready engine.
// Settings are defaulted and validated first.
func New(docs []model.Document, settings config.PipelineSettings, logger *logrus.Entry) (*Engine, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, internalErrors.NewValidationError("pipeline", strings.Join(problems, "; "))
	}

	stopwords := append([]string{}, settings.Stopwords...)
	if settings.StopwordsFile != "" {
		extra, err := tokenizer.LoadStopwords(settings.StopwordsFile)
		if err != nil {
			return nil, err
		}
		stopwords = append(stopwords, extra...)
	}

	tok, err := tokenizer.New(tokenizer.Config{Language: settings.Language, Stopwords: stopwords})
	if err != nil {
		return nil, err
	}

	identity, err := sentences.ParseIdentity(settings.SentenceIdentity)
	if err != nil {
		return nil, err
	}

	corpusIndex := index.Build(docs, tok)
	docStore := store.NewDocumentStore(docs)
	eng := &Engine{
		settings:    settings,
		tokenizer:   tok,
		extractor:   sentences.NewExtractor(tok, identity),
		index:       corpusIndex,
		store:       docStore,
		fileIDFs:    search.ComputeIDFs(corpusIndex.Files()),
		fingerprint: fingerprint(docStore.All(), tok.Language(), stopwords, identity),
		logger:      logger,
	}

	logger.WithFields(logrus.Fields{
		"documents":         corpusIndex.Len(),
		"vocabulary":        corpusIndex.VocabularySize(),
		"language":          tok.Language(),
		"sentence_identity": identity,
		"fingerprint":       eng.fingerprint,
	}).Info("corpus indexed")

	return eng, nil
}

// Settings returns the pipeline settings in effect.
func (e *Engine) Settings() config.PipelineSettings {
	return e.settings
}

// QueryTokens returns the normalized, deduplicated and sorted words of a query.
func (e *Engine) QueryTokens(query string) []string {
	return search.NewQuery(e.tokenizer.Tokenize(query)).Words()
}

// CorpusInfo summarizes the indexed corpus.
func (e *Engine) CorpusInfo() services.CorpusInfo {
	return services.CorpusInfo{
		Documents:  e.index.Len(),
		Vocabulary: e.index.VocabularySize(),
		Files:      e.index.IDs(),
	}
}

// Fingerprint identifies the corpus content and the settings that shape answers.
func (e *Engine) Fingerprint() string {
	return e.fingerprint
}

// fingerprint hashes documents (sorted by ID) together with the tokenizer and identity settings.
func fingerprint(docs []model.Document, language string, stopwords []string, identity sentences.Identity) string {
	extra := make([]string, 0, len(stopwords))
	for _, word := range stopwords {
		if word = strings.ToLower(strings.TrimSpace(word)); word != "" {
			extra = append(extra, word)
		}
	}
	sort.Strings(extra)

	h := sha256.New()
	fmt.Fprintf(h, "language=%s\x00identity=%s\x00stopwords=%s\x00", language, identity, strings.Join(extra, ","))
	for _, doc := range docs {
		fmt.Fprintf(h, "%s\x00%d\x00%s\x00", doc.ID, len(doc.Text), doc.Text)
	}
	return fmt.Sprintf("%x", h.Sum(nil)[:8])
}
