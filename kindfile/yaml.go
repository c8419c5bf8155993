package kindfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	strukt "github.com/reoring/strukt"
)

// LoadYAML parses a YAML kind declaration and registers it.
func LoadYAML(b []byte, opts Options) (*strukt.Kind, Diag, error) {
	var decl Declaration
	if err := yaml.Unmarshal(b, &decl); err != nil {
		return nil, &simpleDiag{}, fmt.Errorf("kindfile: invalid YAML: %w", err)
	}
	return Load(decl, opts)
}

// DecodeDocumentYAML decodes a YAML document into a Document. Non-string
// mapping keys stringify, so wildcard int keys written as YAML integers
// arrive in their key form.
func DecodeDocumentYAML(b []byte) (strukt.Document, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("kindfile: invalid YAML document: %w", err)
	}
	m, ok := normalizeValue(v).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("kindfile: document root must be a mapping")
	}
	return strukt.Document(m), nil
}

// ExportYAML marshals the declaration of a registered kind.
func ExportYAML(k *strukt.Kind) ([]byte, Diag, error) {
	decl, d := Export(k)
	b, err := yaml.Marshal(decl)
	if err != nil {
		return nil, d, fmt.Errorf("kindfile: marshal: %w", err)
	}
	return b, d, nil
}
