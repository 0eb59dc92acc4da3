package i18n

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		path   string
		locale string
		rest   string
	}{
		{"/dashboard", "en", "/dashboard"},
		{"/", "en", "/"},
		{"/hi/dashboard", "hi", "/dashboard"},
		{"/de/batch-submission", "de", "/batch-submission"},
		{"/hi", "hi", "/"},
		{"/hi-IN/dashboard", "hi", "/dashboard"},
		{"/en/dashboard", "en", "/dashboard"},
		{"/fr/dashboard", "en", "/fr/dashboard"},
		{"/api/batches", "en", "/api/batches"},
	}
	for _, tc := range cases {
		locale, rest := Resolve(tc.path)
		assert.Equal(t, tc.locale, locale, "path %q", tc.path)
		assert.Equal(t, tc.rest, rest, "path %q", tc.path)
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("hi"))
	assert.False(t, Supported("fr"))
}

func TestCatalogLookupAndFallback(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)

	assert.Equal(t, "Export Dashboard", catalog.T("en", "dashboard.heading"))
	assert.Equal(t, "निर्यात डैशबोर्ड", catalog.T("hi", "dashboard.heading"))
	assert.Equal(t, "Export-Übersicht", catalog.T("de", "dashboard.heading"))

	// unknown locale falls back to English, unknown key to the key itself
	assert.Equal(t, "Export Dashboard", catalog.T("fr", "dashboard.heading"))
	assert.Equal(t, "no.such.key", catalog.T("en", "no.such.key"))

	tr := catalog.Func("de")
	assert.Equal(t, "Freigegeben", tr("status.APPROVED"))
}

func TestCatalogsCarryParallelKeys(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)
	for key := range catalog.strings["en"] {
		for _, locale := range []string{"hi", "de"} {
			_, ok := catalog.strings[locale][key]
			assert.True(t, ok, "locale %s missing key %s", locale, key)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1,234.5", FormatNumber("en", 1234.5))
	assert.Equal(t, "1,23,456", FormatNumber("hi", 123456))
	assert.Equal(t, "1.234,5", FormatNumber("de", 1234.5))
	assert.Equal(t, "1,234.5", FormatNumber("fr", 1234.5))
}

func TestFormatMoney(t *testing.T) {
	assert.True(t, strings.Contains(FormatMoney("en", 12.5), "$"))
	assert.True(t, strings.Contains(FormatMoney("hi", 12.5), "₹"))
	assert.True(t, strings.Contains(FormatMoney("de", 12.5), "€"))
}

func TestFormatDate(t *testing.T) {
	day := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "March 1, 2026", FormatDate("en", day))
	assert.Equal(t, "1 मार्च 2026", FormatDate("hi", day))
	assert.Equal(t, "1. März 2026", FormatDate("de", day))
	assert.Equal(t, "N/A", FormatDate("en", time.Time{}))
}
