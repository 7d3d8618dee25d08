package session

import (
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	a := New(locale.Hebrew)
	b := New(locale.English)

	require.NotEmpty(t, a.ID)
	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, locale.Hebrew, a.Lang)
	require.Equal(t, Wedding, a.Contact.EventType)
	require.Equal(t, WizardState{}, a.Wizard)
}

func TestSelectionGetSet(t *testing.T) {
	var s Selection
	for _, cat := range catalog.Categories {
		require.Empty(t, s.Get(cat))
		require.NoError(t, s.Set(cat, string(cat)+"-1"))
	}
	require.Equal(t, Selection{Frame: "frame-1", Rope: "rope-1", Carpet: "carpet-1", Mount: "mount-1"}, s)

	err := s.Set(catalog.Category("lights"), "x")
	require.True(t, errors.Is(err, catalog.ErrUnknownCategory))
	require.Empty(t, s.Get(catalog.Category("lights")))
}

func TestContactFormFields(t *testing.T) {
	var c ContactForm
	require.NoError(t, c.Set(FieldName, "Dana"))
	require.NoError(t, c.Set(FieldEmail, "dana@example.com"))
	require.NoError(t, c.Set(FieldDate, "2025-03-05"))
	require.NoError(t, c.Set(FieldEventType, "other"))
	require.NoError(t, c.Set(FieldCustomEventType, "Bar Mitzvah"))

	require.Equal(t, time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), c.Date)
	require.Equal(t, Other, c.EventType)

	v, err := c.Get(FieldDate)
	require.NoError(t, err)
	require.Equal(t, "2025-03-05", v)

	v, err = c.Get(FieldEventType)
	require.NoError(t, err)
	require.Equal(t, "Other", v)

	require.Error(t, c.Set(FieldEventType, "Picnic"))
	require.Equal(t, Other, c.EventType)

	_, err = c.Get(Field("age"))
	require.True(t, errors.Is(err, ErrUnknownField))
}

func TestInvalidDateClearsField(t *testing.T) {
	c := ContactForm{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, c.Set(FieldDate, "next tuesday"))
	require.False(t, c.HasDate())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("05-Mar-2025")
	require.NoError(t, err)
	require.Equal(t, time.March, d.Month())

	d, err = ParseDate("")
	require.NoError(t, err)
	require.True(t, d.IsZero())

	_, err = ParseDate("2025/03/05")
	require.Error(t, err)
}

func TestParseField(t *testing.T) {
	f, err := ParseField("custom-event-type")
	require.NoError(t, err)
	require.Equal(t, FieldCustomEventType, f)

	_, err = ParseField("age")
	require.True(t, errors.Is(err, ErrUnknownField))
}

func TestEventTypeCycleAndLabels(t *testing.T) {
	require.Equal(t, Engagement, Wedding.Next())
	require.Equal(t, Wedding, Other.Next())
	require.Equal(t, Other, Wedding.Prev())
	require.Equal(t, "חתונה", Wedding.Label(locale.Hebrew))
	require.Equal(t, "Corporate", Corporate.Label(locale.English))
}
