// Package numbering formats the human-readable document numbers printed on
// invoices and receipts. Sequence values themselves are allocated atomically
// by the sequence repository, scoped per prefix and year.
package numbering

import (
	"fmt"
	"regexp"
	"strconv"
)

const (
	PrefixInvoice = "INV"
	PrefixPayment = "PAY"
	PrefixReceipt = "REC"
)

var numberPattern = regexp.MustCompile(`^([A-Z]+)-(\d{4})-(\d{5,})$`)

// Format renders a document number as PREFIX-YEAR-00001. Sequences wider
// than five digits are not truncated.
func Format(prefix string, year int, sequence int64) string {
	return fmt.Sprintf("%s-%d-%05d", prefix, year, sequence)
}

// Parse splits a document number back into its components. It accepts the
// zero-padded shape produced by Format.
func Parse(number string) (prefix string, year int, sequence int64, err error) {
	m := numberPattern.FindStringSubmatch(number)
	if m == nil {
		return "", 0, 0, fmt.Errorf("malformed document number %q", number)
	}
	year, err = strconv.Atoi(m[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed year in document number %q", number)
	}
	sequence, err = strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed sequence in document number %q", number)
	}
	return m[1], year, sequence, nil
}
