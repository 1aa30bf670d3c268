package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

const receiptHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Receipt {{.ReceiptNumber}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .receipt {
      max-width: 640px;
      margin: 0 auto;
    }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid #111827;
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .meta {
      text-align: right;
      font-size: 14px;
    }
    .meta .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      font-size: 14px;
    }
    th, td {
      padding: 10px;
      border-bottom: 1px solid #e5e7eb;
      text-align: left;
    }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    .totals {
      margin-top: 12px;
      display: flex;
      justify-content: flex-end;
      font-size: 16px;
    }
    .totals strong {
      margin-left: 12px;
    }
    .footer {
      margin-top: 24px;
      border-top: 1px solid #e5e7eb;
      padding-top: 16px;
      font-size: 12px;
      color: #6b7280;
    }
  </style>
</head>
<body>
  <div class="receipt">
    <div class="header">
      <div>
        <div><strong>{{.CompanyName}}</strong></div>
        {{if .ClientName}}<div>{{.ClientName}}</div>{{end}}
        {{if .ClientEmail}}<div>{{.ClientEmail}}</div>{{end}}
      </div>
      <div class="meta">
        <div class="label">Receipt</div>
        <div><strong>{{.ReceiptNumber}}</strong></div>
        <div>Paid: {{formatDate .PaidAt}}</div>
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th>Description</th>
          <th>Amount</th>
        </tr>
      </thead>
      <tbody>
        <tr>
          <td>{{.JobTitle}}</td>
          <td>{{formatMoney .BaseAmountCents .Currency}}</td>
        </tr>
        <tr>
          <td>Processing fee</td>
          <td>{{formatMoney .FeeAmountCents .Currency}}</td>
        </tr>
      </tbody>
    </table>
    <div class="totals">
      <span>Total paid</span>
      <strong>{{formatMoney .PaidAmountCents .Currency}}</strong>
    </div>

    <div class="footer">
      <div>Thank you for your business.</div>
      {{if .JobReference}}<div>Job {{.JobReference}}</div>{{end}}
      {{if .SessionID}}<div>Session {{.SessionID}}</div>{{end}}
    </div>
  </div>
</body>
</html>
`

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"formatMoney": formatMoney,
		"formatDate":  formatDate,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("receipt").Funcs(funcs).Parse(receiptHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(input RenderInput) (string, error) {
	if input.CompanyName == "" {
		input.CompanyName = "Receipt"
	}
	if input.JobTitle == "" {
		input.JobTitle = "Service"
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatMoney(amount int64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}
	value := float64(amount) / 100.0
	return fmt.Sprintf("%s %.2f", currency, value)
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02")
}
