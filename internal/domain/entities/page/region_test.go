package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDeclare(t *testing.T) {
	reg := NewRegistry()

	first, err := reg.Declare("title", "Hello", "h1", true)
	require.NoError(t, err)
	assert.Equal(t, "title", first.ID)
	assert.Equal(t, "Hello", first.LiveText())

	_, err = reg.Declare("intro", "Welcome", "p", true)
	require.NoError(t, err)

	assert.Len(t, reg.Regions(), 2)
}

func TestRegistryDeclareEmptyID(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Declare("", "text", "p", true)
	assert.Error(t, err)
}

func TestRegistryDeclareDuplicateID(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Declare("title", "Hello", "h1", true)
	require.NoError(t, err)

	_, err = reg.Declare("title", "Other", "h2", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateRegionID)
}

func TestRegistrySetLiveText(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Declare("title", "Hello", "h1", true)
	require.NoError(t, err)

	require.NoError(t, reg.SetLiveText("title", "Changed"))
	assert.Equal(t, "Changed", reg.Regions()[0].LiveText())

	assert.Error(t, reg.SetLiveText("missing", "x"), "unknown region must be rejected")
}

func TestRegistrySetLiveTextInactiveRegion(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Declare("static", "Fixed", "p", false)
	require.NoError(t, err)

	assert.Error(t, reg.SetLiveText("static", "nope"))
	assert.Equal(t, "Fixed", reg.Regions()[0].LiveText())
}

func TestCaptureIsTotalOverActiveRegions(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Declare("title", "Hello", "h1", true)
	require.NoError(t, err)
	_, err = reg.Declare("intro", "Welcome", "p", true)
	require.NoError(t, err)
	_, err = reg.Declare("footer", "Fine print", "p", false)
	require.NoError(t, err)

	require.NoError(t, reg.SetLiveText("title", "Edited"))

	captured := reg.Capture()
	require.Len(t, captured, 2, "inactive regions are excluded")

	// Document order, one edit per active region, unmodified regions carry
	// their defaults.
	assert.Equal(t, Edit{ID: "title", Text: "Edited"}, captured[0])
	assert.Equal(t, Edit{ID: "intro", Text: "Welcome"}, captured[1])
}

func TestCaptureIsPure(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Declare("title", "Hello", "h1", true)
	require.NoError(t, err)
	require.NoError(t, reg.SetLiveText("title", "Edited"))

	first := reg.Capture()
	second := reg.Capture()

	assert.Equal(t, first, second)
	assert.Equal(t, "Edited", reg.Regions()[0].LiveText(), "capture must not mutate live state")
}

func TestCaptureEmptyRegistry(t *testing.T) {
	reg := NewRegistry()
	assert.Empty(t, reg.Capture())
}

func TestEditSetRoundTrip(t *testing.T) {
	es := EditSet{
		{ID: "title", Text: "Hello"},
		{ID: "intro", Text: ""},
	}

	data, err := es.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEditSet(data)
	require.NoError(t, err)
	assert.Equal(t, es, decoded)
}

func TestEditSetMarshalNil(t *testing.T) {
	var es EditSet

	data, err := es.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestUnmarshalEditSetRejectsGarbage(t *testing.T) {
	_, err := UnmarshalEditSet([]byte(`{"not":"an array"}`))
	assert.Error(t, err)
}
