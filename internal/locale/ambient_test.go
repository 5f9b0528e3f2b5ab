package locale_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rangecal/internal/locale"
)

func envOf(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func TestAmbientLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ambient locale.Ambient
		want    string
	}{
		{
			name:    "override wins",
			ambient: locale.Ambient{Override: "ar-EG", AcceptLanguage: "en-US", Getenv: envOf(map[string]string{"LANG": "de_DE.UTF-8"})},
			want:    "ar-EG",
		},
		{
			name:    "accept-language by quality",
			ambient: locale.Ambient{AcceptLanguage: "de;q=0.5,ja-JP;q=0.9,en;q=0.8"},
			want:    "ja-JP",
		},
		{
			name:    "malformed header falls through to env",
			ambient: locale.Ambient{AcceptLanguage: ";;;", Getenv: envOf(map[string]string{"LANG": "fr_FR.UTF-8"})},
			want:    "fr-FR",
		},
		{
			name: "LC_ALL before LANG",
			ambient: locale.Ambient{Getenv: envOf(map[string]string{
				"LC_ALL": "he_IL.UTF-8",
				"LANG":   "en_GB.UTF-8",
			})},
			want: "he-IL",
		},
		{
			name:    "LANGUAGE list takes first entry",
			ambient: locale.Ambient{Getenv: envOf(map[string]string{"LANGUAGE": "pt_BR:pt"})},
			want:    "pt-BR",
		},
		{
			name:    "C locale is skipped",
			ambient: locale.Ambient{Getenv: envOf(map[string]string{"LC_ALL": "C", "LANG": "en_GB"})},
			want:    "en-GB",
		},
		{
			name:    "nothing set",
			ambient: locale.Ambient{},
			want:    locale.DefaultLocale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.ambient.Locale())
		})
	}
}
