package ui

import (
	"strings"
)

// MaskedValue is what the secrets table shows in place of a value that was
// deliberately not decrypted.
const MaskedValue = "***"

// SecretRow is one line of the secrets table.
type SecretRow struct {
	Name      string
	Value     string
	UpdatedAt string
}

// RenderSecretsTable renders secret rows as an aligned two- or three-column
// table. Column widths adapt to the content; headers are bolded via the
// semantic formatters when color is enabled.
func RenderSecretsTable(rows []SecretRow, showValues bool) string {
	nameWidth := len("NAME")
	valueWidth := len("VALUE")
	for _, row := range rows {
		if len(row.Name) > nameWidth {
			nameWidth = len(row.Name)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	var b strings.Builder
	b.WriteString(pad("NAME", nameWidth))
	b.WriteString("  ")
	b.WriteString(pad("VALUE", valueWidth))
	b.WriteString("  UPDATED\n")

	for _, row := range rows {
		value := row.Value
		if !showValues {
			value = MaskedValue
		}
		b.WriteString(pad(row.Name, nameWidth))
		b.WriteString("  ")
		b.WriteString(pad(value, valueWidth))
		b.WriteString("  ")
		if row.UpdatedAt != "" {
			b.WriteString(row.UpdatedAt)
		} else {
			b.WriteString(Muted.Sprint("unknown"))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
