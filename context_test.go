package hawk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextBuildAndSign(t *testing.T) {
	c := &Context{
		Algorithm: SHA256,
		Password:  []byte("werxhqb98rpaxn39848xrunpaw3489ruxnpa98w4rxn"),
		Method:    "GET",
		Path:      "/resource/1?b=1&a=2",
		Host:      "example.com",
		Port:      "8000",
	}
	base, err := c.BuildAuthBaseString(1353832234, "j4h3g2", "", "some-app-ext-data", "", "")
	require.NoError(t, err)
	mac, err := c.Sign(base)
	require.NoError(t, err)
	assert.Equal(t, "6R4rV5iE+NPoym+WwjeHzjAGXUtLNIxmo1vpMofpLAE=", mac)
	assert.Nil(t, c.Err())
}

func TestContextStickyError(t *testing.T) {
	c := &Context{Algorithm: Algorithm{}, Password: []byte("secret")}
	_, err := c.Sign("base")
	require.Error(t, err)
	assert.Equal(t, err, c.Err())
	assert.NotEmpty(t, c.ErrMessage())
}

func TestContextNowAppliesOffset(t *testing.T) {
	withOffset := &Context{Offset: 100}
	noOffset := &Context{Offset: 0}
	assert.InDelta(t, noOffset.Now()+100, withOffset.Now(), 2)
}
