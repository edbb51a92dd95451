// Package numwords renders rupee amounts as English words in the Indian
// numbering system (crore, lakh, thousand) for the printed invoice.
package numwords

import "strings"

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// belowThousand spells 0..999.
func belowThousand(n int64, sb *strings.Builder) {
	if n > 99 {
		sb.WriteString(ones[n/100])
		sb.WriteString(" Hundred ")
		n %= 100
	}
	if n > 19 {
		sb.WriteString(tens[n/10])
		sb.WriteString(" ")
		n %= 10
	}
	if n > 0 {
		sb.WriteString(ones[n])
		sb.WriteString(" ")
	}
}

// InRupees spells the whole-rupee part of an amount, e.g.
// 123456 -> "One Lakh Twenty Three Thousand Four Hundred Fifty Six Rupees Only".
// Paise are ignored; negative amounts are spelled by absolute value.
func InRupees(amount int64) string {
	if amount < 0 {
		amount = -amount
	}
	if amount == 0 {
		return "Zero Rupees Only"
	}

	var sb strings.Builder
	if amount >= 1_00_00_000 {
		belowThousand(amount/1_00_00_000, &sb)
		sb.WriteString("Crore ")
		amount %= 1_00_00_000
	}
	if amount >= 1_00_000 {
		belowThousand(amount/1_00_000, &sb)
		sb.WriteString("Lakh ")
		amount %= 1_00_000
	}
	if amount >= 1_000 {
		belowThousand(amount/1_000, &sb)
		sb.WriteString("Thousand ")
		amount %= 1_000
	}
	belowThousand(amount, &sb)

	words := strings.Join(strings.Fields(sb.String()), " ")
	return words + " Rupees Only"
}
