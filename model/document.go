package model

// Document is one corpus file: its identifier (the file name) and raw text.
// Documents are immutable once loaded.
type Document struct {
	ID   string `json:"id"`
	Text string `json:"-"`
}

// Sentence is a scorable unit extracted from a document.
// Text is its identity under the default sentence identity policy; DocumentID and Position
// record where it was first seen.
type Sentence struct {
	Text       string   `json:"text"`
	DocumentID string   `json:"document_id"`
	Position   int      `json:"position"` // Index of the sentence within its document, counting only kept sentences
	Tokens     []string `json:"-"`
}
