package payroll

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	amountPrinter = message.NewPrinter(language.English)
	bahtPrinter   = message.NewPrinter(language.Thai)
)

// FormatBaht renders a badge amount the way th-TH locale formatting does,
// e.g. "฿21,500.00" and "-฿300.00".
func FormatBaht(v float64) string {
	v = finiteOrZero(v)
	sign := ""
	if v < 0 {
		sign = "-"
		v = math.Abs(v)
	}
	// x/text puts a space between symbol and number.
	parts := strings.Fields(bahtPrinter.Sprint(currency.NarrowSymbol(currency.THB.Amount(v))))
	return sign + strings.Join(parts, "")
}

// FormatAmount renders an itemized table amount with grouping and two
// decimals.
func FormatAmount(v float64) string {
	return amountPrinter.Sprintf("%.2f", v)
}

// FormatFixed mirrors toFixed(2) used in list rows.
func FormatFixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func StatusTone(status string) string {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case PaymentStatusPaid:
		return "green"
	case PaymentStatusFailed:
		return "red"
	default:
		return "yellow"
	}
}

// RunStatusTone colors the payroll run status badge.
func RunStatusTone(status string) string {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case RunStatusCompleted:
		return "green"
	case RunStatusProcessing:
		return "blue"
	case RunStatusFailed:
		return "red"
	default:
		return "yellow"
	}
}
