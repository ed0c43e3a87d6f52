package language

// catalog is the input normalization table. It is not the list of languages
// the provider supports right now; that list is always fetched live.
var catalog = []Spec{
	{Code: "AR", Name: "Arabic", Aliases: []string{"العربية"}},
	{Code: "BG", Name: "Bulgarian"},
	{Code: "CS", Name: "Czech"},
	{Code: "DA", Name: "Danish"},
	{Code: "DE", Name: "German", Aliases: []string{"deutsch"}},
	{Code: "EL", Name: "Greek"},
	{
		Code:            "EN",
		Name:            "English",
		Variants:        []string{"EN-GB", "EN-US"},
		RequiresVariant: true,
	},
	{
		Code:    "EN-GB",
		Name:    "English (British)",
		Aliases: []string{"british english", "uk english"},
		Base:    "EN",
	},
	{
		Code:    "EN-US",
		Name:    "English (American)",
		Aliases: []string{"american english", "us english"},
		Base:    "EN",
	},
	{
		Code:     "ES",
		Name:     "Spanish",
		Aliases:  []string{"español", "espanol", "castilian"},
		Variants: []string{"ES-419"},
	},
	{
		Code:    "ES-419",
		Name:    "Spanish (Latin American)",
		Aliases: []string{"latin american spanish"},
		Base:    "ES",
	},
	{Code: "ET", Name: "Estonian"},
	{Code: "FI", Name: "Finnish"},
	{Code: "FR", Name: "French", Aliases: []string{"français", "francais"}},
	{Code: "HE", Name: "Hebrew"},
	{Code: "HU", Name: "Hungarian"},
	{Code: "ID", Name: "Indonesian"},
	{Code: "IT", Name: "Italian", Aliases: []string{"italiano"}},
	{Code: "JA", Name: "Japanese", Aliases: []string{"日本語", "nihongo"}},
	{Code: "KO", Name: "Korean", Aliases: []string{"한국어"}},
	{Code: "LT", Name: "Lithuanian"},
	{Code: "LV", Name: "Latvian"},
	{Code: "NB", Name: "Norwegian", Aliases: []string{"norwegian bokmål", "norwegian bokmal", "bokmål", "no"}},
	{Code: "NL", Name: "Dutch", Aliases: []string{"nederlands"}},
	{Code: "PL", Name: "Polish"},
	{
		Code:            "PT",
		Name:            "Portuguese",
		Variants:        []string{"PT-BR", "PT-PT"},
		RequiresVariant: true,
	},
	{
		Code:    "PT-BR",
		Name:    "Portuguese (Brazilian)",
		Aliases: []string{"brazilian portuguese"},
		Base:    "PT",
	},
	{
		Code:    "PT-PT",
		Name:    "Portuguese (European)",
		Aliases: []string{"european portuguese"},
		Base:    "PT",
	},
	{Code: "RO", Name: "Romanian"},
	{Code: "RU", Name: "Russian", Aliases: []string{"русский"}},
	{Code: "SK", Name: "Slovak"},
	{Code: "SL", Name: "Slovenian", Aliases: []string{"slovene"}},
	{Code: "SV", Name: "Swedish"},
	{Code: "TH", Name: "Thai"},
	{Code: "TR", Name: "Turkish"},
	{Code: "UK", Name: "Ukrainian"},
	{Code: "VI", Name: "Vietnamese"},
	{
		Code:     "ZH",
		Name:     "Chinese",
		Aliases:  []string{"中文"},
		Variants: []string{"ZH-HANS", "ZH-HANT"},
	},
	{
		Code:    "ZH-HANS",
		Name:    "Chinese (Simplified)",
		Aliases: []string{"simplified chinese", "简体中文"},
		Base:    "ZH",
	},
	{
		Code:    "ZH-HANT",
		Name:    "Chinese (Traditional)",
		Aliases: []string{"traditional chinese", "繁體中文"},
		Base:    "ZH",
	},
}
