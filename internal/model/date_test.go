package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateAddDays(t *testing.T) {
	d := Date{Year: 2024, Month: time.February, Day: 28}

	assert.Equal(t, Date{Year: 2024, Month: time.February, Day: 29}, d.AddDays(1))
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 1}, d.AddDays(2))
	assert.Equal(t, Date{Year: 2023, Month: time.December, Day: 31}, Date{Year: 2024, Month: time.January, Day: 1}.AddDays(-1))
}

func TestDateCompare(t *testing.T) {
	a := Date{Year: 2024, Month: time.March, Day: 15}
	b := Date{Year: 2024, Month: time.April, Day: 1}

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
	assert.True(t, a.Equal(Date{Year: 2024, Month: time.March, Day: 15}))
	assert.Equal(t, 17, a.DaysUntil(b))
	assert.Equal(t, -17, b.DaysUntil(a))
	assert.Equal(t, time.Friday, a.Weekday())
}

func TestDateOfUsesLocation(t *testing.T) {
	taipei := time.FixedZone("UTC+8", 8*60*60)
	instant := time.Date(2024, time.March, 15, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 15}, DateOf(instant))
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 16}, DateOf(instant.In(taipei)))
}

func TestDateJSON(t *testing.T) {
	d := Date{Year: 2024, Month: time.March, Day: 5}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-05T00:00:00"`), &decoded))
	assert.Equal(t, d, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"05.03.2024"`), &decoded))
}

func TestDaysRemaining(t *testing.T) {
	installed := Date{Year: 2024, Month: time.January, Day: 1}

	assert.Equal(t, 90, DaysRemaining(installed, 90, installed))
	assert.Equal(t, 60, DaysRemaining(installed, 90, Date{Year: 2024, Month: time.January, Day: 31}))
	assert.Equal(t, 0, DaysRemaining(installed, 30, Date{Year: 2024, Month: time.June, Day: 1}))

	c := Consumable{InstallationDate: installed, LifetimeDays: 90}
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 31}, c.ExpiresOn())
}

func TestCategory(t *testing.T) {
	assert.True(t, CategoryWaterFilter.Valid())
	assert.False(t, Category("toaster").Valid())
	assert.Equal(t, "toaster", Category("toaster").Label())
	assert.Len(t, Categories, 5)
}
