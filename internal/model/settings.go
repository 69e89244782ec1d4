package model

import (
	"errors"
	"fmt"
	"slices"
)

// Validation errors for model values.
var (
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidCurrency = errors.New("unsupported currency")
	ErrInvalidLanguage = errors.New("unsupported language")
	ErrInvalidTheme    = errors.New("unsupported theme")
)

// Theme selects the light or dark palette.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Currency describes a supported currency.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

// Language describes a supported display language.
type Language struct {
	Code string
	Name string
}

// Currencies lists the supported currencies.
var Currencies = []Currency{
	{Code: "BRL", Symbol: "R$", Name: "Real Brasileiro"},
	{Code: "USD", Symbol: "$", Name: "Dólar Americano"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "Libra Esterlina"},
}

// Languages lists the supported languages.
var Languages = []Language{
	{Code: "pt-BR", Name: "Português (Brasil)"},
	{Code: "en-US", Name: "English (US)"},
	{Code: "es-ES", Name: "Español"},
}

// AppSettings are the user's preferences.
type AppSettings struct {
	Currency         string `json:"currency"`
	Language         string `json:"language"`
	Theme            Theme  `json:"theme"`
	BackupEmail      string `json:"backupEmail,omitempty"`
	BiometricEnabled bool   `json:"biometricEnabled"`
}

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() AppSettings {
	return AppSettings{
		Currency:         "BRL",
		Language:         "pt-BR",
		Theme:            ThemeLight,
		BiometricEnabled: false,
	}
}

// WithDefaults fills fields left empty, as in an older or hand-edited backup,
// from DefaultSettings.
func (s AppSettings) WithDefaults() AppSettings {
	def := DefaultSettings()
	if s.Currency == "" {
		s.Currency = def.Currency
	}
	if s.Language == "" {
		s.Language = def.Language
	}
	if s.Theme == "" {
		s.Theme = def.Theme
	}
	return s
}

// Validate checks every enumerated field.
func (s AppSettings) Validate() error {
	if _, ok := LookupCurrency(s.Currency); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, s.Currency)
	}
	if !slices.ContainsFunc(Languages, func(l Language) bool { return l.Code == s.Language }) {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, s.Language)
	}
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, s.Theme)
	}
	return nil
}

// LookupCurrency finds a supported currency by code.
func LookupCurrency(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}
