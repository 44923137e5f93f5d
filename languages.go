package readlai

import "strings"

// LanguageNames maps target language codes to human-readable names for prompts.
var LanguageNames = map[string]string{
	"ar":    "Arabic",
	"bg":    "Bulgarian",
	"cs":    "Czech",
	"da":    "Danish",
	"de":    "German",
	"el":    "Greek",
	"en":    "English",
	"es":    "Spanish",
	"fi":    "Finnish",
	"fr":    "French",
	"he":    "Hebrew",
	"hi":    "Hindi",
	"hu":    "Hungarian",
	"id":    "Indonesian",
	"it":    "Italian",
	"ja":    "Japanese",
	"ko":    "Korean",
	"nb":    "Norwegian Bokmål",
	"nl":    "Dutch",
	"pl":    "Polish",
	"pt":    "Portuguese",
	"pt-BR": "Portuguese (Brazil)",
	"ro":    "Romanian",
	"ru":    "Russian",
	"sv":    "Swedish",
	"th":    "Thai",
	"tr":    "Turkish",
	"uk":    "Ukrainian",
	"vi":    "Vietnamese",
	"zh-CN": "Chinese (Simplified)",
	"zh-TW": "Chinese (Traditional)",
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the base language, then to the code itself.
func GetLanguageName(code string) string {
	code = NormalizeLanguageCode(code)
	if name, ok := LanguageNames[code]; ok {
		return name
	}
	base, _, _ := strings.Cut(code, "-")
	if name, ok := LanguageNames[base]; ok {
		return name
	}
	return code
}

// NormalizeLanguageCode converts a code to BCP 47 casing (e.g., "zh_cn" → "zh-CN").
func NormalizeLanguageCode(code string) string {
	code = strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	base, region, found := strings.Cut(code, "-")
	if !found {
		return strings.ToLower(base)
	}
	return strings.ToLower(base) + "-" + strings.ToUpper(region)
}

// ResolveTargetLanguage builds a TargetLanguage from a code and an optional
// label, filling in the label from LanguageNames when it is empty.
func ResolveTargetLanguage(code, label string) TargetLanguage {
	code = NormalizeLanguageCode(code)
	if strings.TrimSpace(label) == "" {
		label = GetLanguageName(code)
	}
	return TargetLanguage{Label: label, Code: code}
}
