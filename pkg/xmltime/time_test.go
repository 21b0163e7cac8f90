package xmltime

import (
	"testing"
	"time"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormats(t *testing.T) {
	tm := Unix(1276041409)
	assert.Equal(t, "20100608.235649", tm.Key())
	assert.Equal(t, "2010-06-08 23:56:49", tm.String())

	var zero Time
	assert.True(t, zero.IsZero())
	assert.Equal(t, "1970-01-01 00:00:00", zero.String())
	assert.Equal(t, "19700101.000000", zero.Key())
}

func TestRoundTrip(t *testing.T) {
	now := Now()
	then, err := Parse(now.String())
	require.NoError(t, err)
	assert.Equal(t, now, then)

	var other Time
	require.NoError(t, other.UnmarshalText([]byte(now.String())))
	assert.Equal(t, now, other)

	b, err := now.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, now.String(), string(b))
}

func TestParse(t *testing.T) {
	tm, err := Parse("2003-07-13 12:34:56")
	require.NoError(t, err)
	assert.Equal(t, "20030713.123456", tm.Key())

	tm, err = Parse("  2003-07-13 \t 12:34:56\n")
	require.NoError(t, err)
	assert.Equal(t, "2003-07-13 12:34:56", tm.String())

	tm, err = Parse("")
	require.Error(t, err)
	assert.True(t, tm.IsZero())

	tm, err = Parse("2010-6-8 1:2:3")
	require.NoError(t, err)
	assert.Equal(t, "2010-06-08 01:02:03", tm.String())

	var keep = Unix(42)
	require.Error(t, keep.UnmarshalText([]byte("yesterday")))
	assert.Equal(t, int64(42), keep.Unix())
}

func TestKeysSortInTimeOrder(t *testing.T) {
	early := Unix(1000)
	late := early.Add(36 * time.Hour)
	assert.Less(t, early.Key(), late.Key())
	assert.Equal(t, int64(1000+36*3600), late.Unix())
}

func TestStringParseRoundTrip(t *testing.T) {
	f := fuzz.New()
	for i := 0; i < 500; i++ {
		var sec uint32
		f.Fuzz(&sec)
		tm := Unix(int64(sec))

		parsed, err := Parse(tm.String())
		require.NoError(t, err)
		assert.Equal(t, tm, parsed)

		var text Time
		require.NoError(t, text.UnmarshalText([]byte(tm.String())))
		assert.Equal(t, tm, text)
	}
}
