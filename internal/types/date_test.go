package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_YearsElapsed(t *testing.T) {
	tests := []struct {
		name string
		dob  Date
		now  time.Time
		want int
	}{
		{
			name: "birthday already passed this year",
			dob:  NewDate(2010, time.March, 10),
			now:  time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
			want: 14,
		},
		{
			name: "birthday is today",
			dob:  NewDate(2010, time.June, 1),
			now:  time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			want: 14,
		},
		{
			name: "birthday later this month",
			dob:  NewDate(2010, time.June, 15),
			now:  time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			want: 13,
		},
		{
			name: "birthday in a later month",
			dob:  NewDate(2010, time.December, 1),
			now:  time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			want: 13,
		},
		{
			name: "born this year",
			dob:  NewDate(2024, time.January, 5),
			now:  time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "leap day birthday before march first",
			dob:  NewDate(2012, time.February, 29),
			now:  time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC),
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dob.YearsElapsed(tt.now))
		})
	}
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		DateOfBirth Date  `json:"date_of_birth"`
		LastPayment *Date `json:"last_payment_date"`
	}

	err := json.Unmarshal([]byte(`{"date_of_birth":"2015-04-21","last_payment_date":null}`), &payload)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2015, time.April, 21), payload.DateOfBirth)
	assert.Nil(t, payload.LastPayment)

	out, err := json.Marshal(payload.DateOfBirth)
	require.NoError(t, err)
	assert.Equal(t, `"2015-04-21"`, string(out))

	err = json.Unmarshal([]byte(`{"date_of_birth":"21/04/2015"}`), &payload)
	assert.Error(t, err)
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2020, time.July, 4, 15, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2020-07-04", d.String())

	require.NoError(t, d.Scan([]byte("2019-01-02")))
	assert.Equal(t, "2019-01-02", d.String())

	assert.Error(t, d.Scan(42))
}
