package datefmt

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDMYCalendar(t *testing.T) {
	got, err := ParseDMY("29/02/2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDMY("1/3/2024")
	require.NoError(t, err)
	assert.Equal(t, "01/03/2024", FormatDMY(got))

	for _, bad := range []string{"", "31/02/2024", "29/02/2023", "2024-01-01", "32/01/2024", "01/13/2024", "abc"} {
		assert.False(t, IsValidDMY(bad), bad)
	}
}

func TestISOConversions(t *testing.T) {
	assert.Equal(t, "15/03/2004", ISOToDMY("2004-03-15T00:00:00.000Z"))
	assert.Equal(t, "15/03/2004", ISOToDMY("2004-03-15"))
	assert.Equal(t, "", ISOToDMY("không rõ"))

	iso, err := DMYToISO("15/03/2004")
	require.NoError(t, err)
	assert.Equal(t, "2004-03-15T00:00:00Z", iso)

	_, err = DMYToISO("31/04/2004")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Equal(t, "", FormatInstant(time.Time{}))
}

func TestParseAnyAcceptsBothShapes(t *testing.T) {
	a, err := ParseAny("05/01/2024 08:30")
	require.NoError(t, err)
	b, err := ParseAny("2024-01-05T08:30:00Z")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestTimestampJSON(t *testing.T) {
	var v struct {
		At  Timestamp  `json:"at"`
		Opt *Timestamp `json:"opt"`
	}
	require.NoError(t, sonic.UnmarshalString(`{"at":"12/01/2024","opt":null}`, &v))
	assert.Equal(t, "12/01/2024", v.At.Display())
	assert.Nil(t, v.Opt)

	out, err := sonic.MarshalString(v.At)
	require.NoError(t, err)
	assert.Equal(t, `"12/01/2024"`, out)

	var bad Timestamp
	require.NoError(t, bad.UnmarshalJSON([]byte(`"hôm qua"`)))
	assert.True(t, bad.Time.IsZero())
	assert.Equal(t, "hôm qua", bad.Display())

	var num Timestamp
	require.NoError(t, num.UnmarshalJSON([]byte(`1704067200`)))
	assert.Equal(t, "1704067200", num.Raw)

	fresh := NewTimestamp(time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, "15/07/2024", fresh.Display())
	assert.False(t, fresh.IsZero())
}

func TestTimestampDay(t *testing.T) {
	early, ok := ParseTimestamp("2024-01-05T08:00:00Z").Day()
	require.True(t, ok)
	late, ok := ParseTimestamp("2024-01-05T17:00:00Z").Day()
	require.True(t, ok)
	dmy, ok := ParseTimestamp("5/1/2024").Day()
	require.True(t, ok)

	assert.True(t, early.Equal(late))
	assert.True(t, early.Equal(dmy))
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), early)

	_, ok = ParseTimestamp("hôm qua").Day()
	assert.False(t, ok)
	_, ok = Timestamp{}.Day()
	assert.False(t, ok)
}
