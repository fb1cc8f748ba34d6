package quotelai

import "strings"

// LanguageNames maps language codes to the English names used in prompts.
var LanguageNames = map[string]string{
	"ar":    "Arabic",
	"bg":    "Bulgarian",
	"bn":    "Bengali",
	"ca":    "Catalan",
	"cs":    "Czech",
	"da":    "Danish",
	"de":    "German",
	"el":    "Greek",
	"en":    "English",
	"es":    "Spanish",
	"fa":    "Persian",
	"fi":    "Finnish",
	"fr":    "French",
	"he":    "Hebrew",
	"hi":    "Hindi",
	"hu":    "Hungarian",
	"id":    "Indonesian",
	"it":    "Italian",
	"ja":    "Japanese",
	"ko":    "Korean",
	"ms":    "Malay",
	"nb":    "Norwegian Bokmål",
	"nl":    "Dutch",
	"pl":    "Polish",
	"pt":    "Portuguese",
	"pt_br": "Brazilian Portuguese",
	"ro":    "Romanian",
	"ru":    "Russian",
	"sk":    "Slovak",
	"sv":    "Swedish",
	"th":    "Thai",
	"tr":    "Turkish",
	"uk":    "Ukrainian",
	"vi":    "Vietnamese",
	"zh":    "Chinese",
	"zh_cn": "Simplified Chinese",
	"zh_tw": "Traditional Chinese",
}

// NormalizeLang lowercases a language code and uses "_" as the region separator
// (e.g., "zh-CN" → "zh_cn").
func NormalizeLang(code string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(code), "-", "_"))
}

// BaseLang returns the language part of a code (e.g., "pt" from "pt-BR").
func BaseLang(code string) string {
	base, _, _ := strings.Cut(NormalizeLang(code), "_")
	return base
}

// LanguageName returns the prompt name for a language code.
// Falls back to the base language, then to the code itself.
func LanguageName(code string) string {
	norm := NormalizeLang(code)
	if name, ok := LanguageNames[norm]; ok {
		return name
	}
	if name, ok := LanguageNames[BaseLang(norm)]; ok {
		return name
	}
	return code
}

// IsEnglish reports whether code names English in any regional variant.
// Quotes are authored in English, so English targets are never translated.
func IsEnglish(code string) bool {
	return BaseLang(code) == "en"
}
