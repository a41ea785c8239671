package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{
		"water_filter":        CategoryWaterFilter,
		" AC_FILTER ":         CategoryAirConditionFilter,
		"фильтр для воды":     CategoryWaterFilter,
		"Фильтр кондиционера": CategoryAirConditionFilter,
		"другое":              CategoryOther,
	} {
		got, ok := ParseCategory(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseCategory("toaster")
	assert.False(t, ok)
}
