package locale_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rangecal/internal/locale"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want locale.WeekStart
	}{
		{tag: "en-US", want: locale.Sunday},
		{tag: "en-GB", want: locale.Monday},
		{tag: "ar-EG", want: locale.Saturday},
		{tag: "fa-IR", want: locale.Saturday},
		{tag: "he-IL", want: locale.Sunday},
		{tag: "pt-PT", want: locale.Sunday},
		{tag: "pt-BR", want: locale.Sunday},
		{tag: "de-DE", want: locale.Monday},
		{tag: "zh-Hant-TW", want: locale.Sunday},
		{tag: "zh-yue-HK", want: locale.Sunday},
		{tag: "es-419", want: locale.Monday},
		{tag: "sr-Latn-RS", want: locale.Monday},

		// language decides only when there is no region
		{tag: "en", want: locale.Sunday},
		{tag: "ja", want: locale.Sunday},
		{tag: "ar", want: locale.Saturday},
		{tag: "arq", want: locale.Saturday},
		{tag: "arz", want: locale.Saturday},
		{tag: "fa", want: locale.Saturday},
		{tag: "de", want: locale.Monday},
		{tag: "ar-DE", want: locale.Monday},
		{tag: "en-150", want: locale.Monday},

		// case-insensitive
		{tag: "en-us", want: locale.Sunday},
		{tag: "AR-eg", want: locale.Saturday},

		// extlang-shaped third subtag is not a region
		{tag: "en-USA", want: locale.Sunday},
		// subtags after a malformed language are ignored
		{tag: "en_US", want: locale.Sunday},
		{tag: "engl-US", want: locale.Monday},

		// malformed
		{tag: "", want: locale.Monday},
		{tag: "e", want: locale.Monday},
		{tag: "123", want: locale.Monday},
		{tag: "-US", want: locale.Monday},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, locale.Resolve(tt.tag))
		})
	}
}

func TestWeekStartString(t *testing.T) {
	t.Parallel()

	for _, ws := range []locale.WeekStart{locale.Monday, locale.Sunday, locale.Saturday} {
		parsed, ok := locale.ParseWeekStart(ws.String())
		require.True(t, ok)
		require.Equal(t, ws, parsed)
	}

	got, ok := locale.ParseWeekStart("friday")
	require.False(t, ok)
	require.Equal(t, locale.Monday, got)
}
