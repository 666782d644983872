package numbering_test

import (
	"testing"

	"github.com/schoolfees/school_fees_app/internal/utils/numbering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "INV-2026-00001", numbering.Format(numbering.PrefixInvoice, 2026, 1))
	assert.Equal(t, "PAY-2026-00042", numbering.Format(numbering.PrefixPayment, 2026, 42))
	assert.Equal(t, "REC-2026-99999", numbering.Format(numbering.PrefixReceipt, 2026, 99999))
}

func TestFormat_WideSequenceNotTruncated(t *testing.T) {
	assert.Equal(t, "INV-2026-123456", numbering.Format(numbering.PrefixInvoice, 2026, 123456))
}

func TestParse_RoundTrip(t *testing.T) {
	number := numbering.Format(numbering.PrefixPayment, 2026, 317)

	prefix, year, sequence, err := numbering.Parse(number)

	require.NoError(t, err)
	assert.Equal(t, numbering.PrefixPayment, prefix)
	assert.Equal(t, 2026, year)
	assert.Equal(t, int64(317), sequence)
}

func TestParse_Malformed(t *testing.T) {
	malformed := []string{
		"",
		"INV-2026",
		"INV-26-00001",
		"inv-2026-00001",
		"INV-2026-1",
		"INV-2026-00001-extra",
	}

	for _, number := range malformed {
		_, _, _, err := numbering.Parse(number)
		assert.Error(t, err, "expected %q to be rejected", number)
	}
}
