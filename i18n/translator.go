package i18n

import "sync"

// Translator retrieves localized messages for encode error codes.
// data provides optional metadata to embed in the message (for example,
// "type" for incompatible_type).
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := t.lookup(code)
	if typ := data["type"]; typ != "" {
		msg += " (" + typ + ")"
	}
	return msg
}

func (t dictTranslator) lookup(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "keys_must_be_strings":
			return "キーは文字列でなければなりません"
		case "max_depth_exceeded":
			return "ネストの深さが上限を超えました"
		case "in_error_state":
			return "ジェネレータがエラー状態です"
		case "invalid_number":
			return "数値をJSONで表現できません"
		case "no_buffer":
			return "出力バッファがありません"
		case "invalid_string":
			return "文字列をエンコードできません"
		case "incompatible_type":
			return "対応していない値の型です"
		case "buffer_unavailable":
			return "バッファを取得できませんでした"
		case "unknown":
			return "不明なエラー"
		}
	default: // "en"
		switch code {
		case "keys_must_be_strings":
			return "keys must be strings"
		case "max_depth_exceeded":
			return "max depth exceeded"
		case "in_error_state":
			return "generator in error state"
		case "invalid_number":
			return "invalid number"
		case "no_buffer":
			return "no buffer"
		case "invalid_string":
			return "invalid string"
		case "incompatible_type":
			return "incompatible type"
		case "buffer_unavailable":
			return "could not get buffer"
		case "unknown":
			return "unknown error"
		}
	}
	return code
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
