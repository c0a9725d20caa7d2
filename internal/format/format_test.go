package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFmtCurrency(t *testing.T) {
	t.Parallel()

	cases := []struct {
		minor    int64
		currency string
		want     string
	}{
		{12900, "USD", "$129"},
		{12950, "usd", "$129.50"},
		{123456789, "USD", "$1,234,567.89"},
		{5, "USD", "$0.05"},
		{-12900, "USD", "-$129"},
		{1000, "EUR", "EUR 1,000"},
		{0, "USD", "$0"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FmtCurrency(tc.minor, tc.currency), "%d %s", tc.minor, tc.currency)
	}
}

func TestFmtDuration(t *testing.T) {
	t.Parallel()

	require.Equal(t, "60 minutes", FmtDuration(60))
	require.Equal(t, "1 minute", FmtDuration(1))
}

func TestFmtDate(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Jan 15, 2025", FmtDate(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)))
	require.Empty(t, FmtDate(time.Time{}))
}
