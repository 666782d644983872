package pagination_test

import (
	"testing"

	"github.com/schoolfees/school_fees_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		in       pagination.Params
		expected pagination.Params
	}{
		{"zero values get defaults", pagination.Params{}, pagination.Params{Page: 1, Limit: 10}},
		{"negative page clamped", pagination.Params{Page: -3, Limit: 25}, pagination.Params{Page: 1, Limit: 25}},
		{"limit capped at 100", pagination.Params{Page: 2, Limit: 500}, pagination.Params{Page: 2, Limit: 100}},
		{"valid values untouched", pagination.Params{Page: 4, Limit: 50}, pagination.Params{Page: 4, Limit: 50}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.in.Normalize(10))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 3, Limit: 20}.Offset())
}

func TestNewResult(t *testing.T) {
	testCases := []struct {
		name          string
		total         int
		params        pagination.Params
		expectedPages int
	}{
		{"exact multiple", 40, pagination.Params{Page: 1, Limit: 20}, 2},
		{"partial last page", 41, pagination.Params{Page: 1, Limit: 20}, 3},
		{"empty set", 0, pagination.Params{Page: 1, Limit: 20}, 0},
		{"single row", 1, pagination.Params{Page: 1, Limit: 20}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := pagination.NewResult(tc.total, tc.params)
			assert.Equal(t, tc.total, result.Total)
			assert.Equal(t, tc.params.Page, result.Page)
			assert.Equal(t, tc.expectedPages, result.Pages)
		})
	}
}
