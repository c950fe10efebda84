package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var requiredKeys = []string{
	KeyLoginTitle, KeyLoginLabel, KeyPassword, KeyLogIn, KeyDontHaveAccount,
	KeyCreateAccount, KeyForgotPassword, KeyUserNotFoundException, KeyLoginException,
}

func TestBaseCatalogHasRequiredKeys(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)
	for _, k := range requiredKeys {
		require.NotEqual(t, k, tr.T(k), "missing translation for %s", k)
	}
}

func TestLocaleMatching(t *testing.T) {
	cases := []struct {
		tag     string
		matched string
		us      bool
	}{
		{"en", "en", false},
		{"en-US", "en-US", true},
		{"sv-SE", "sv", false},
		{"sv", "sv", false},
		{"de", "en", false},
		{"", "en", false},
	}
	for _, tc := range cases {
		tr, err := New(tc.tag)
		require.NoError(t, err, tc.tag)
		require.Equal(t, tc.matched, tr.Matched(), tc.tag)
		require.Equal(t, tc.us, tr.IsUS(), tc.tag)
	}
}

func TestRegionOnlyCountsWhenExplicit(t *testing.T) {
	// "en" would infer US with low confidence.
	tr, err := New("en")
	require.NoError(t, err)
	require.False(t, tr.IsUS())

	tr, err = New("es-US")
	require.NoError(t, err)
	require.True(t, tr.IsUS())
}

func TestOverridesAndFallback(t *testing.T) {
	en, err := New("en")
	require.NoError(t, err)
	us, err := New("en-US")
	require.NoError(t, err)
	sv, err := New("sv")
	require.NoError(t, err)

	require.Equal(t, "Email", en.T(KeyLoginLabel))
	require.Equal(t, "Email address", us.T(KeyLoginLabel))
	// en-US inherits keys it does not override
	require.Equal(t, en.T(KeyLoginException), us.T(KeyLoginException))
	require.Equal(t, "Logga in", sv.T(KeyLogIn))
}

func TestUnknownKeyReturnsKey(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)
	require.Equal(t, "no-such-key", tr.T("no-such-key"))
}

func TestInvalidTag(t *testing.T) {
	_, err := New("!!")
	require.Error(t, err)
}
