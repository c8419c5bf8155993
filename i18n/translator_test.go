package i18n

import (
	"strings"
	"testing"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("type_mismatch", nil); msg == "type_mismatch" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("type_mismatch", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_EmbedsData(t *testing.T) {
	msg := T("type_mismatch", map[string]string{"expected": "string", "actual": "int"})
	if !strings.Contains(msg, "string") || !strings.Contains(msg, "int") {
		t.Fatalf("expected both type names in message, got %q", msg)
	}

	msg = T("validation_failed", map[string]string{"field": "spam.eggs"})
	if !strings.Contains(msg, "spam.eggs") {
		t.Fatalf("expected field path in message, got %q", msg)
	}
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code echo for unknown code, got %q", msg)
	}
}
