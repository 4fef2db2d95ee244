package payslip

import (
	"bytes"
	"fmt"
	"strings"

	"go-payroll/internal/salary"

	"github.com/shopspring/decimal"
)

// Statement is everything a rendered payslip shows.
type Statement struct {
	PayslipID      string
	EmployeeName   string
	EmployeeNumber int
	Position       string
	PayDate        string
	Snapshot       salary.Snapshot
	GrossPay       decimal.Decimal
	Deductions     decimal.Decimal
	NetPay         decimal.Decimal
}

func (s Statement) lines() []string {
	e, d, ot, c := s.Snapshot.Earnings, s.Snapshot.Deductions, s.Snapshot.OvertimePay, s.Snapshot.Contributions
	money := func(label string, v decimal.Decimal) string {
		return fmt.Sprintf("%-28s %14s", label, v.StringFixed(2))
	}

	return []string{
		"PAYSLIP",
		fmt.Sprintf("Employee: %s (#%d)", s.EmployeeName, s.EmployeeNumber),
		"Position: " + s.Position,
		fmt.Sprintf("Period: %s to %s", s.Snapshot.PeriodStart, s.Snapshot.PeriodEnd),
		"Pay date: " + s.PayDate,
		"",
		"EARNINGS",
		money("Basic rate", e.BasicRate),
		money("Allowance", e.Allowance),
		money("Non-taxable allowance", e.Ntax),
		money("Overtime", ot.TotalOvertime),
		money("Gross pay", s.GrossPay),
		"",
		"DEDUCTIONS",
		money("SSS", c.SSSEmployee),
		money("PhilHealth", c.PhilHealthTotal),
		money("Pag-IBIG", c.PagIBIGEmployee),
		money("Withholding tax", d.Wtax),
		money("No work", d.Nowork),
		money("Loan", d.Loan),
		money("Charges", d.Charges),
		money("MSFC loan", d.Msfcloan),
		money("Late", ot.TotalLate),
		money("Undertime", ot.TotalUndertime),
		money("Total deductions", s.Deductions),
		"",
		money("NET PAY", s.NetPay),
		"",
		"Ref " + s.PayslipID,
	}
}

// RenderPDF writes the statement as a single page PDF in a monospaced font.
func RenderPDF(s Statement) []byte {
	lines := s.lines()

	var content strings.Builder
	content.WriteString("BT\n/F1 10 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		if i > 0 {
			content.WriteString("T* ")
		}
		fmt.Fprintf(&content, "(%s) Tj\n", pdfEscape(line))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(objects)+1, xref)

	return out.Bytes()
}

func pdfEscape(v string) string {
	return strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(v)
}
