package vrr_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreg/regval/pkg/vrr"
)

func TestDate(t *testing.T) {
	v := vrr.Date(false)

	t.Run("valid dates", func(t *testing.T) {
		out := v("2024-02-29") // leap year
		assert.True(t, out.Valid)

		parsed, ok := out.Normalized.(time.Time)
		require.True(t, ok)
		assert.Equal(t, 2024, parsed.Year())
		assert.Equal(t, time.February, parsed.Month())
		assert.Equal(t, 29, parsed.Day())
	})

	t.Run("anything not shaped YYYY-MM-DD fails with DATE_FORMAT", func(t *testing.T) {
		for _, in := range []string{"2024/01/31", "31-01-2024", "2024-1-31", "20240131", "yesterday", ""} {
			out := v(in)
			assert.False(t, out.Valid, "value %q should fail", in)
			assert.Equal(t, vrr.CodeDateFormat, out.Code, "value %q", in)
		}
	})

	t.Run("calendar-invalid dates fail with DATE_INVALID", func(t *testing.T) {
		for _, in := range []string{"2024-13-01", "2024-01-32", "2023-02-29", "2024-00-10"} {
			out := v(in)
			assert.False(t, out.Valid, "value %q should fail", in)
			assert.Equal(t, vrr.CodeDateInvalid, out.Code, "value %q", in)
		}
	})

	t.Run("past-only rejects future dates", func(t *testing.T) {
		pastOnly := vrr.Date(true)

		future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
		out := pastOnly(future)
		assert.False(t, out.Valid)
		assert.Equal(t, vrr.CodeDatePastOnly, out.Code)

		out = pastOnly("2020-06-30")
		assert.True(t, out.Valid)
	})
}
