package deepl

// Formality is a DeepL formality mode.
type Formality string

const (
	FormalityMore       Formality = "more"
	FormalityLess       Formality = "less"
	FormalityPreferMore Formality = "prefer_more"
	FormalityPreferLess Formality = "prefer_less"
)

// Formalities lists every formality mode the API accepts.
func Formalities() []Formality {
	return []Formality{FormalityMore, FormalityLess, FormalityPreferMore, FormalityPreferLess}
}

// Direction selects the source or target language list.
type Direction string

const (
	DirectionSource Direction = "source"
	DirectionTarget Direction = "target"
)

// DetectionPivot is the target used when translating only to learn the
// detected source language. DeepL detects the source independently of the
// target, so the choice does not bias detection.
const DetectionPivot = "EN-US"

// TranslateRequest is a single translation. A nil SourceLang or Formality is
// left out of the outbound call so the provider applies its own behaviour.
type TranslateRequest struct {
	Text               string
	TargetLang         string
	SourceLang         *string
	Formality          *Formality
	PreserveFormatting bool
}

// Translation is the provider's answer to a TranslateRequest.
type Translation struct {
	Text               string `json:"text"`
	DetectedSourceLang string `json:"detected_source_language"`
}

// Language is one entry of the live language list.
type Language struct {
	Code              string `json:"language"`
	Name              string `json:"name"`
	SupportsFormality bool   `json:"supports_formality"`
}

// Usage is the account's consumption for the current billing period. A nil
// limit means the plan has no limit.
type Usage struct {
	CharacterCount int64
	CharacterLimit *int64
	DocumentCount  *int64
	DocumentLimit  *int64
}
