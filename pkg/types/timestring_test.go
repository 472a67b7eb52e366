package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "full", input: "13:00", want: 780},
		{name: "leading zero", input: "09:30", want: 570},
		{name: "single digit hour", input: "9:05", want: 545},
		{name: "missing minutes", input: "9", want: 540},
		{name: "midnight", input: "00:00", want: 0},
		{name: "end of day", input: "24:00", want: 1440},
		{name: "surrounding spaces", input: " 8:15 ", want: 495},
		{name: "empty", input: "", wantErr: true},
		{name: "letters", input: "ab:cd", wantErr: true},
		{name: "one digit minutes", input: "9:5", wantErr: true},
		{name: "minutes overflow", input: "10:60", wantErr: true},
		{name: "hours overflow", input: "25:00", wantErr: true},
		{name: "past end of day", input: "24:01", wantErr: true},
		{name: "negative", input: "-1:00", wantErr: true},
		{name: "trailing colon", input: "10:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClockToMinutes(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinutesToClock(t *testing.T) {
	got, err := MinutesToClock(545)
	require.NoError(t, err)
	assert.Equal(t, "09:05", got)

	got, err = MinutesToClock(0)
	require.NoError(t, err)
	assert.Equal(t, "00:00", got)

	_, err = MinutesToClock(-5)
	assert.ErrorIs(t, err, ErrOutOfDay)

	_, err = MinutesToClock(MinutesPerDay + 1)
	assert.ErrorIs(t, err, ErrOutOfDay)
}

func TestTimeString_AddHours(t *testing.T) {
	start := MustTimeString("09:00")

	end, err := start.AddHours(2.5)
	require.NoError(t, err)
	assert.Equal(t, "11:30", end.String())

	end, err = start.AddHours(1.5)
	require.NoError(t, err)
	assert.Equal(t, "10:30", end.String())

	_, err = start.AddHours(0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = start.AddHours(-1)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = start.AddHours(math.NaN())
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = start.AddHours(16)
	assert.ErrorIs(t, err, ErrOutOfDay)
}

func TestTimeString_ZeroValue(t *testing.T) {
	var ts TimeString
	assert.True(t, ts.IsZero())
	assert.Equal(t, "", ts.String())
	assert.ErrorIs(t, ts.Validate(), ErrInvalidTimeFormat)

	midnight := MustTimeString("00:00")
	assert.False(t, midnight.IsZero())
	assert.NoError(t, midnight.Validate())
}

func TestTimeString_Compare(t *testing.T) {
	a := MustTimeString("10:00")
	b := MustTimeString("11:00")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.True(t, a.Equal(MustTimeString("10")))
}

func TestTimeString_ScanValue(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("14:30"))
	assert.Equal(t, 870, ts.Minutes())

	require.NoError(t, ts.Scan([]byte("08:00")))
	assert.Equal(t, "08:00", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))

	v, err := MustTimeString("07:45").Value()
	require.NoError(t, err)
	assert.Equal(t, "07:45", v)
}

func TestTimeString_JSON(t *testing.T) {
	type payload struct {
		Start TimeString `json:"start"`
	}

	data, err := json.Marshal(payload{Start: MustTimeString("9:00")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"09:00"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"start":"16:15"}`), &p))
	assert.Equal(t, "16:15", p.Start.String())

	assert.Error(t, json.Unmarshal([]byte(`{"start":"99:99"}`), &p))
}
