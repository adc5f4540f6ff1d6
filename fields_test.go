package hawk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuthorizationRoundTrip(t *testing.T) {
	header := `Hawk id="dh37fgj492je", ts="1353832234", nonce="j4h3g2", ext="some-app-ext-data", mac="6R4rV5iE+NPoym+WwjeHzjAGXUtLNIxmo1vpMofpLAE="`
	f, err := ParseAuthorization(header)
	require.NoError(t, err)
	assert.Equal(t, "j4h3g2", f.Nonce)
	assert.Equal(t, int64(1353832234), f.TS)
	assert.Equal(t, "some-app-ext-data", f.Ext)

	out := CreateAuthorizationHeader("dh37fgj492je", f)
	assert.Equal(t, header, out)
	assert.Equal(t, len(header), CalculateAuthorizationHeaderLength("dh37fgj492je", f))
}

func TestParseAuthorizationWithAppDlg(t *testing.T) {
	header := `Hawk id="123", ts="1", nonce="n", app="wn6yzoi9da", dlg="k3j4h2", mac="m"`
	f, err := ParseAuthorization(header)
	require.NoError(t, err)
	assert.Equal(t, "wn6yzoi9da", f.App)
	assert.Equal(t, "k3j4h2", f.Dlg)
}

func TestParseAuthorizationBadScheme(t *testing.T) {
	_, err := ParseAuthorization(`Basic id="x", ts="1", nonce="n", mac="m"`)
	require.ErrorIs(t, err, ErrBadScheme)
}

func TestParseAuthorizationMissingRequired(t *testing.T) {
	_, err := ParseAuthorization(`Hawk id="x"`)
	require.ErrorIs(t, err, ErrParse)
}

func TestParseAuthorizationUnknownParamIgnored(t *testing.T) {
	f, err := ParseAuthorization(`Hawk id="x", ts="1", nonce="n", mac="m", future="v"`)
	require.NoError(t, err)
	assert.Equal(t, "x", f.ID)
}

func TestParseWWWAuthenticateRoundTrip(t *testing.T) {
	header := `Hawk ts="1353832234", tsm="dh37fgj492je"`
	f, err := ParseWWWAuthenticate(header)
	require.NoError(t, err)
	assert.Equal(t, int64(1353832234), f.TS)
	assert.Equal(t, "dh37fgj492je", f.TSM)
	assert.Equal(t, header, CreateWWWAuthenticate(f))
}

func TestParseWWWAuthenticateMissingTSM(t *testing.T) {
	_, err := ParseWWWAuthenticate(`Hawk ts="1"`)
	require.ErrorIs(t, err, ErrParse)
}

func TestParseAuthorizationBadTS(t *testing.T) {
	_, err := ParseAuthorization(`Hawk id="x", ts="not-a-number", nonce="n", mac="m"`)
	require.ErrorIs(t, err, ErrTimeValue)
}

func TestParseAuthorizationTSOverflow(t *testing.T) {
	_, err := ParseAuthorization(`Hawk id="x", ts="99999999999999999999999999", nonce="n", mac="m"`)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestCreateAuthorizationHeaderNoHash(t *testing.T) {
	out := CreateAuthorizationHeader("id", AuthFields{ID: "id", TS: 1, Nonce: "n", MAC: "m"})
	assert.NotContains(t, out, "hash=")
	assert.NotContains(t, out, "ext=")
}
