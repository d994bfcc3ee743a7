package server

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestRequestLanguage(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		accept   string
		fallback language.Tag
		want     language.Tag
	}{
		{"default", "", "", language.English, language.English},
		{"configured default", "", "", language.Russian, language.Russian},
		{"query wins", "?lang=ru", "en-US", language.English, language.Russian},
		{"query english over russian default", "?lang=en", "", language.Russian, language.English},
		{"accept language", "", "ru-RU,ru;q=0.9", language.English, language.Russian},
		{"query regional", "?lang=ru-RU", "", language.English, language.Russian},
		{"query unsupported keeps default", "?lang=de", "", language.Russian, language.Russian},
		{"query unsupported ignores accept", "?lang=fr", "ru", language.English, language.English},
		{"query malformed", "?lang=!!", "", language.Russian, language.Russian},
		{"accept unsupported", "", "de-DE", language.Russian, language.Russian},
		{"accept second choice", "", "de-DE,ru;q=0.8", language.English, language.Russian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/v1/sessions/s1/check"+tt.query, nil)
			if tt.accept != "" {
				r.Header.Set("Accept-Language", tt.accept)
			}
			assert.Equal(t, tt.want, requestLanguage(r, tt.fallback))
		})
	}
}
