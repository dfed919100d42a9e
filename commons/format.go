// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders a monetary amount with Indonesian digit grouping,
// e.g. 500000 -> "500.000". Fractional cents are dropped; invoices in this
// product are whole-rupiah amounts.
func FormatRupiah(amount float64) string {
	return idPrinter.Sprintf("%v", number.Decimal(amount, number.MaxFractionDigits(0)))
}
