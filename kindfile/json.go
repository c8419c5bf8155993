package kindfile

import (
	"bytes"
	"fmt"

	gojson "github.com/goccy/go-json"

	strukt "github.com/reoring/strukt"
)

// LoadJSON parses a JSON kind declaration and registers it.
func LoadJSON(b []byte, opts Options) (*strukt.Kind, Diag, error) {
	var decl Declaration
	dec := gojson.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&decl); err != nil {
		return nil, &simpleDiag{}, fmt.Errorf("kindfile: invalid JSON: %w", err)
	}
	return Load(decl, opts)
}

// DecodeDocumentJSON decodes a JSON document into a Document. Numbers stay
// json.Number so int and float declarations check faithfully.
func DecodeDocumentJSON(b []byte) (strukt.Document, error) {
	var m map[string]any
	dec := gojson.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("kindfile: invalid JSON document: %w", err)
	}
	return strukt.Document(m), nil
}

// EncodeDocumentJSON marshals a document, indented.
func EncodeDocumentJSON(doc strukt.Document) ([]byte, error) {
	b, err := gojson.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("kindfile: marshal document: %w", err)
	}
	return b, nil
}

// ExportJSON marshals the declaration of a registered kind, indented.
func ExportJSON(k *strukt.Kind) ([]byte, Diag, error) {
	decl, d := Export(k)
	b, err := gojson.MarshalIndent(decl, "", "  ")
	if err != nil {
		return nil, d, fmt.Errorf("kindfile: marshal: %w", err)
	}
	return b, d, nil
}
