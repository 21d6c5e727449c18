package hirez

import "fmt"

// Endpoint identifies one vendor-operated API base for a game/platform pair.
type Endpoint string

const (
	EndpointSmitePC    Endpoint = "smitepc"
	EndpointSmiteXbox  Endpoint = "smitexbox"
	EndpointSmitePS4   Endpoint = "smiteps"
	EndpointPaladinsPC Endpoint = "paladinspc"
)

var endpointBaseURLs = map[Endpoint]string{
	EndpointSmitePC:    "http://api.smitegame.com/smiteapi.svc",
	EndpointSmiteXbox:  "http://api.xbox.smitegame.com/smiteapi.svc",
	EndpointSmitePS4:   "http://api.ps4.smitegame.com/smiteapi.svc",
	EndpointPaladinsPC: "http://api.paladins.com/paladinsapi.svc",
}

// BaseURL returns the wire base URL the endpoint resolves to.
func (e Endpoint) BaseURL() string {
	return endpointBaseURLs[e]
}

// Valid reports whether the endpoint is one of the enumerated bases.
func (e Endpoint) Valid() bool {
	_, ok := endpointBaseURLs[e]
	return ok
}

func (e Endpoint) String() string {
	return string(e)
}

// ParseEndpoint converts a configuration string into an Endpoint.
func ParseEndpoint(s string) (Endpoint, error) {
	e := Endpoint(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown endpoint %q", s)
	}
	return e, nil
}

// game distinguishes the two vendor naming schemes. Smite methods say "god"
// where Paladins methods say "champion".
type game int

const (
	gameSmite game = iota
	gamePaladins
)

func (e Endpoint) game() game {
	if e == EndpointPaladinsPC {
		return gamePaladins
	}
	return gameSmite
}

// Language is a vendor language code for localized catalog data.
type Language string

const (
	LanguageEnglish    Language = "1"
	LanguageGerman     Language = "2"
	LanguageFrench     Language = "3"
	LanguageChinese    Language = "5"
	LanguageSpanish    Language = "7"
	LanguageSpanishLA  Language = "9"
	LanguagePortuguese Language = "10"
	LanguageRussian    Language = "11"
	LanguagePolish     Language = "12"
	LanguageTurkish    Language = "13"
)

// Code returns the numeric wire code sent as a URL parameter.
func (l Language) Code() string {
	return string(l)
}

var languageNames = map[string]Language{
	"english":    LanguageEnglish,
	"german":     LanguageGerman,
	"french":     LanguageFrench,
	"chinese":    LanguageChinese,
	"spanish":    LanguageSpanish,
	"spanish-la": LanguageSpanishLA,
	"portuguese": LanguagePortuguese,
	"russian":    LanguageRussian,
	"polish":     LanguagePolish,
	"turkish":    LanguageTurkish,
}

// ParseLanguage converts a configuration string, either a language name or a
// raw vendor code, into a Language.
func ParseLanguage(s string) (Language, error) {
	if l, ok := languageNames[s]; ok {
		return l, nil
	}
	for _, l := range languageNames {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown language %q", s)
}
