package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gcbaptista/go-questions/services"
)

func writeSentences(out io.Writer, answer services.Answer) {
	for _, s := range answer.Sentences {
		fmt.Fprintln(out, s.Text)
	}
}

func writeScores(out io.Writer, answer services.Answer) {
	fmt.Fprintf(out, "Tokens: %v\n", answer.Tokens)
	fmt.Fprintln(out, "Files:")
	for i, f := range answer.Files {
		fmt.Fprintf(out, "  [%d] %s (%.4f)\n", i+1, f.ID, f.Score)
	}
	fmt.Fprintln(out, "Sentences:")
	for i, s := range answer.Sentences {
		fmt.Fprintf(out, "  [%d] %s (idf %.4f, density %.4f, %s)\n", i+1, s.Text, s.SumIDF, s.Density, s.DocumentID)
	}
}

func writeJSON(out io.Writer, answer services.Answer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(answer); err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	return nil
}
