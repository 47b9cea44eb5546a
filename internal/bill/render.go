// Package bill renders invoices as plain-text bills suitable for printing
// on receipt stationery.
package bill

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/carepoint/medibill/internal/invoice"
	"github.com/carepoint/medibill/internal/words"
)

const lineWidth = 72

// Header carries the hospital letterhead printed at the top of every bill.
type Header struct {
	Name    string
	Address string
	Phone   string
}

// Render produces the printable bill for inv. Hospital bills carry the full
// inpatient block; medical bills only the customer line.
func Render(h Header, inv *invoice.Invoice) string {
	var b strings.Builder

	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	center(&b, h.Name)
	if h.Address != "" {
		center(&b, h.Address)
	}
	if h.Phone != "" {
		center(&b, "Phone: "+h.Phone)
	}
	b.WriteString(rule + "\n")

	label := "PHARMACY BILL"
	if inv.BillType == invoice.BillTypeHospital {
		label = "HOSPITAL BILL"
	}
	center(&b, label)
	b.WriteString(thin + "\n")

	field(&b, "Bill No", inv.ID.String())
	field(&b, "Date", inv.CreatedAt.Format("02 Jan 2006 15:04"))
	field(&b, "Patient", inv.CustomerName)
	field(&b, "Contact", inv.CustomerContact)

	if inv.BillType == invoice.BillTypeHospital {
		field(&b, "Age / Sex", joinNonEmpty(" / ", inv.PatientAge, inv.PatientSex))
		field(&b, "Address", inv.PatientAddress)
		field(&b, "Consultant", inv.ConsultantName)
		field(&b, "Admitted", inv.AdmitDate)
		field(&b, "Discharged", inv.DischargeDate)
		field(&b, "IPD No", inv.IPDNo)
		field(&b, "Reg No", inv.RegNo)
	}

	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "%-4s %-38s %5s %10s %12s\n", "No", "Description", "Qty", "Rate", "Amount")
	b.WriteString(thin + "\n")

	for i, item := range inv.Items {
		fmt.Fprintf(&b, "%-4d %-38s %5d %10s %12s\n",
			i+1, truncate(item.DisplayName(), 38), item.Quantity,
			formatPaise(item.Price), formatPaise(item.Amount()))

		if m := item.Medicine; m != nil {
			detail := joinNonEmpty("  ", batchLabel(m.BatchNumber), expiryLabel(m))
			if detail != "" {
				fmt.Fprintf(&b, "     %s\n", detail)
			}
		}
	}

	b.WriteString(thin + "\n")
	total(&b, "Subtotal", inv.TotalAmount)
	if inv.Discount != 0 {
		total(&b, "Discount", -inv.Discount)
	}
	if inv.Tax != 0 {
		total(&b, "Tax", inv.Tax)
	}
	total(&b, "Grand Total", inv.GrandTotal)
	b.WriteString(thin + "\n")

	inWords := inv.AmountInWords
	if inWords == "" {
		inWords = words.FromPaise(inv.GrandTotal)
	}
	b.WriteString("In words: " + inWords + "\n")
	b.WriteString(rule + "\n")

	return b.String()
}

func center(b *strings.Builder, s string) {
	pad := (lineWidth - len(s)) / 2
	if pad < 0 {
		pad = 0
	}

	b.WriteString(strings.Repeat(" ", pad) + s + "\n")
}

func field(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}

	fmt.Fprintf(b, "%-12s: %s\n", name, value)
}

func total(b *strings.Builder, name string, amount int64) {
	fmt.Fprintf(b, "%59s %12s\n", name+":", formatPaise(amount))
}

// truncate cuts s to at most n runes, ending a cut string with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return string([]rune(s)[:n-1]) + "…"
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, sep)
}

func batchLabel(batch string) string {
	if batch == "" {
		return ""
	}

	return "Batch: " + batch
}

func expiryLabel(m *invoice.MedicineRef) string {
	if m.ExpiryDate.IsZero() {
		return ""
	}

	return "Exp: " + m.ExpiryDate.Format("01/2006")
}

// formatPaise renders a paise amount as rupees with Indian digit grouping,
// e.g. 12345678 -> "1,23,456.78".
func formatPaise(p int64) string {
	sign := ""
	if p < 0 {
		sign = "-"
		p = -p
	}

	rupees := p / 100
	paise := p % 100

	digits := fmt.Sprintf("%d", rupees)
	if len(digits) > 3 {
		head := digits[:len(digits)-3]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		digits = strings.Join(groups, ",") + "," + digits[len(digits)-3:]
	}

	return fmt.Sprintf("%s%s.%02d", sign, digits, paise)
}
