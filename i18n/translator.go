package i18n

import "fmt"

// Translator retrieves localized messages for Violation codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	get := func(k string) string {
		if data == nil {
			return ""
		}
		return data[k]
	}
	switch t.lang {
	case "ja":
		switch code {
		case "type_mismatch":
			if e, a := get("expected"), get("actual"); e != "" && a != "" {
				return fmt.Sprintf("%s 型が必要ですが %s です", e, a)
			}
			return "型が不正です"
		case "missing_required":
			return "必須フィールドが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "unauthorized_type":
			if k, ty := get("key"), get("type"); k != "" && ty != "" {
				return fmt.Sprintf("キー %q は %s 型として不正です", k, ty)
			}
			if ty := get("type"); ty != "" {
				return fmt.Sprintf("%s 型は許可されていません", ty)
			}
			return "許可されていない型です"
		case "validation_failed":
			if f := get("field"); f != "" {
				return fmt.Sprintf("フィールド %q の検証に失敗しました", f)
			}
			return "検証に失敗しました"
		case "malformed_path":
			if r := get("reason"); r != "" {
				return "パスが不正です: " + r
			}
			return "パスが不正です"
		}
	default: // "en"
		switch code {
		case "type_mismatch":
			if e, a := get("expected"), get("actual"); e != "" && a != "" {
				return fmt.Sprintf("expected %s, got %s", e, a)
			}
			return "invalid type"
		case "missing_required":
			return "required field missing"
		case "unknown_key":
			return "unknown key"
		case "unauthorized_type":
			if k, ty := get("key"), get("type"); k != "" && ty != "" {
				return fmt.Sprintf("key %q is not a valid %s key", k, ty)
			}
			if ty := get("type"); ty != "" {
				return fmt.Sprintf("type %s is not authorized", ty)
			}
			return "type not authorized"
		case "validation_failed":
			if f := get("field"); f != "" {
				return fmt.Sprintf("validation of field %q failed", f)
			}
			return "validation failed"
		case "malformed_path":
			if r := get("reason"); r != "" {
				return "malformed path: " + r
			}
			return "malformed path"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
