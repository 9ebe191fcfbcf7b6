package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gcbaptista/go-questions/internal/search"
	"github.com/gcbaptista/go-questions/services"
)

// Answer runs the query through both ranking stages.
// The fileMatches best documents by TF-IDF are split into sentences, and the
// sentenceMatches best sentences are returned. Counts larger than what is available
// are clamped; non-positive counts select nothing. A query with no index-worthy
// word yields an empty answer.
func (e *Engine) Answer(ctx context.Context, query string, fileMatches, sentenceMatches int) (services.Answer, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return services.Answer{}, err
	}

	q := search.NewQuery(e.tokenizer.Tokenize(query))
	answer := services.Answer{
		QueryID:   uuid.New().String(),
		Query:     query,
		Tokens:    q.Words(),
		Files:     []services.FileHit{},
		Sentences: []services.SentenceHit{},
	}
	log := e.logger.WithField("query_id", answer.QueryID)

	if len(q) == 0 {
		log.Debug("query has no index-worthy words")
		answer.Took = time.Since(start).Milliseconds()
		return answer, nil
	}

	topFiles, clamped := search.TopFiles(q, e.index.Files(), e.fileIDFs, fileMatches)
	if clamped {
		logClamp(log, "file_matches", fileMatches, len(topFiles))
	}

	ids := make([]string, len(topFiles))
	for i, file := range topFiles {
		ids[i] = file.ID
		answer.Files = append(answer.Files, services.FileHit{ID: file.ID, Score: file.Score})
	}

	docs, err := e.store.GetMany(ids)
	if err != nil {
		return services.Answer{}, err
	}

	if err := ctx.Err(); err != nil {
		return services.Answer{}, err
	}

	extracted := e.extractor.Extract(docs)
	sentenceIDFs := search.ComputeIDFs(e.extractor.Collection(extracted))
	topSentences, clamped := search.TopSentences(q, extracted, sentenceIDFs, sentenceMatches)
	if clamped {
		logClamp(log, "sentence_matches", sentenceMatches, len(topSentences))
	}

	for _, s := range topSentences {
		answer.Sentences = append(answer.Sentences, services.SentenceHit{
			Text:          s.Text,
			DocumentID:    s.DocumentID,
			Position:      s.Position,
			SumIDF:        s.SumIDF,
			Density:       s.Density,
			MatchingCount: s.MatchingCount,
		})
	}

	answer.Took = time.Since(start).Milliseconds()
	log.WithFields(logrus.Fields{
		"tokens":    answer.Tokens,
		"files":     len(answer.Files),
		"sentences": len(extracted),
		"took_ms":   answer.Took,
	}).Debug("query answered")

	return answer, nil
}

func logClamp(log *logrus.Entry, name string, requested, available int) {
	log.WithFields(logrus.Fields{
		"requested": requested,
		"available": available,
	}).Debugf("%s clamped to available items", name)
}
