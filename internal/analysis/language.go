package analysis

import "fmt"

// Language is the UI language preference. The remote service uses its own
// spelling on the wire, see WireValue.
type Language string

const (
	English Language = "en"
	Tamil   Language = "ta"
)

// ParseLanguage accepts "en" or "ta".
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case English, Tamil:
		return Language(s), nil
	}
	return "", fmt.Errorf("unknown language %q (want en or ta)", s)
}

// WireValue is the value sent in the analyze request's language parameter.
// Anything other than Tamil is sent as english.
func (l Language) WireValue() string {
	if l == Tamil {
		return "tamil"
	}
	return "english"
}

// DisplayName is the label shown in the settings panel.
func (l Language) DisplayName() string {
	if l == Tamil {
		return "தமிழ்"
	}
	return "English"
}
