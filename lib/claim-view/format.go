package claimview

import "strconv"

// FormatAmount разделяет разряды пробелами: 12345 -> "12 345"
func FormatAmount(value int) string {
	negative := value < 0
	digits := strconv.Itoa(value)
	if negative {
		digits = digits[1:]
	}
	out := make([]byte, 0, len(digits)+len(digits)/3+1)
	lead := len(digits) % 3
	if lead > 0 {
		out = append(out, digits[:lead]...)
	}
	for i := lead; i < len(digits); i += 3 {
		if len(out) > 0 {
			out = append(out, ' ')
		}
		out = append(out, digits[i:i+3]...)
	}
	if negative {
		return "-" + string(out)
	}
	return string(out)
}
