package registry

// aliases maps known display-name variants onto canonical registry names.
// Resolution substitutes before any database lookup, so an alias always wins
// over a fuzzy match. Data change, not a code change.
var aliases = map[string]string{
	"GPT-4o Mini":       "gpt-4o-mini",
	"GPT 4o mini":       "gpt-4o-mini",
	"GPT-4o":            "gpt-4o",
	"GPT 4o":            "gpt-4o",
	"ChatGPT":           "gpt-4o",
	"Claude":            "Claude 3.5 Sonnet",
	"Claude Sonnet":     "Claude 3.5 Sonnet",
	"Claude Haiku":      "Claude 3.5 Haiku",
	"Gemini":            "Gemini 2.0 Flash",
	"Gemini Flash":      "Gemini 2.0 Flash",
	"DeepSeek":          "deepseek-chat",
	"DeepSeek Chat":     "deepseek-chat",
	"DeepSeek Reasoner": "deepseek-reasoner",
	"Dall-e 3":          "DALL-E 3",
	"Imagen":            "Imagen 3",
	"FLUX":              "FLUX.1 Schnell",
	"Sonic":             "Sonic English",
}

// CanonicalName applies the alias table to a display name. Names without an
// alias pass through unchanged.
func CanonicalName(displayName string) string {
	if canonical, ok := aliases[displayName]; ok {
		return canonical
	}
	return displayName
}

// fallbackNames is the fixed chain of well-known defaults tried when every
// lookup strategy misses. First active row wins.
var fallbackNames = []string{
	"gpt-4o-mini",
	"gpt-4o",
	"Claude 3.5 Haiku",
	"Gemini 2.0 Flash",
	"deepseek-chat",
}
