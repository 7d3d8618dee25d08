package locale

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	for _, in := range []string{"en", "HE", " ar "} {
		_, err := ParseLanguage(in)
		require.NoError(t, err, in)
	}

	lang, err := ParseLanguage("fr")
	require.Error(t, err)
	require.Equal(t, English, lang)
}

func TestDirection(t *testing.T) {
	require.False(t, English.IsRTL())
	require.True(t, Hebrew.IsRTL())
	require.True(t, Arabic.IsRTL())
}

func TestNextCycles(t *testing.T) {
	require.Equal(t, Hebrew, English.Next())
	require.Equal(t, Arabic, Hebrew.Next())
	require.Equal(t, English, Arabic.Next())
	require.Equal(t, English, Language("xx").Next())
}

func TestTextFallsBackToEnglish(t *testing.T) {
	txt := Text{English: "Gold", Hebrew: "זהב"}
	require.Equal(t, "זהב", txt.Get(Hebrew))
	require.Equal(t, "Gold", txt.Get(Arabic))
}

func TestTablesAreComplete(t *testing.T) {
	for _, lang := range Languages {
		s := T(lang)
		for name, v := range map[string]string{
			"NewRequest": s.NewRequest, "EventDetails": s.EventDetails, "Selections": s.Selections,
			"None": s.None, "Other": s.Other, "SubmitRequest": s.SubmitRequest,
		} {
			require.NotEmpty(t, v, "%s missing for %s", name, lang)
		}
	}
	require.Equal(t, T(English), T(Language("xx")))
}
