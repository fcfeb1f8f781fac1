package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"math/rand"
	"time"
)

// 金額は最小通貨単位で持っているので表示時に変換する
func rupees(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"rupees": rupees,
	"inc":    func(i int) int { return i + 1 },
	"amount": func(l InvoiceLine) int64 { return l.UnitPrice * l.Quantity },
}).Parse(`<p>Dear {{.CustomerName}},</p>
<p>Thank you for your order. Please find below the Proforma Invoice <strong>{{.PINumber}}</strong> for order #{{.OrderID}}.</p>
<table border="1" cellpadding="4" cellspacing="0">
  <tr><th>#</th><th>Item</th><th>Qty</th><th>Unit Price</th><th>Amount</th></tr>
  {{range $i, $l := .Lines}}
  <tr>
    <td>{{inc $i}}</td>
    <td>{{$l.ProductName}}</td>
    <td>{{$l.Quantity}} PCS</td>
    <td>{{rupees $l.UnitPrice}}</td>
    <td>{{rupees (amount $l)}}</td>
  </tr>
  {{end}}
</table>
<p>Subtotal: {{rupees .Subtotal}}<br/>
CGST ({{.CGSTRate}}%): {{rupees .CGSTAmount}}<br/>
SGST ({{.SGSTRate}}%): {{rupees .SGSTAmount}}<br/>
Discount: {{rupees .Discount}}<br/>
<strong>Total: {{rupees .Total}}</strong></p>
<p>Best regards,<br/>ElectroChem Power</p>`))

type invoiceView struct {
	InvoiceEmail
	CGSTRate   int64
	CGSTAmount int64
	SGSTRate   int64
	SGSTAmount int64
}

// GST 18%（CGST 9% + SGST 9%）
const taxRatePercent = 18

// BuildInvoiceHTMLは請求書メール本文を組み立てる。
func BuildInvoiceHTML(email InvoiceEmail) (string, error) {
	v := invoiceView{
		InvoiceEmail: email,
		CGSTRate:     taxRatePercent / 2,
		SGSTRate:     taxRatePercent / 2,
	}
	v.CGSTAmount = email.Subtotal * v.CGSTRate / 100
	v.SGSTAmount = email.Subtotal * v.SGSTRate / 100

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// NewPINumberは PI-YYYYMM-XXXX 形式の見積請求書番号を発番する。
func NewPINumber(now time.Time) string {
	return fmt.Sprintf("PI-%04d%02d-%04d", now.Year(), int(now.Month()), rand.Intn(10000))
}
