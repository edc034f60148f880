package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"strings"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// ApprovalData feeds the credit approval email template.
type ApprovalData struct {
	RecipientName  string
	CreditType     string // display name, e.g. "Crédit Ordinateur"
	CreditAmount   float64
	Duration       int
	MonthlyPayment float64
	Year           int
}

func baseFuncs() htmpl.FuncMap {
	return htmpl.FuncMap{
		"now":    func() time.Time { return time.Now().UTC() },
		"upper":  strings.ToUpper,
		"amount": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}
}

// RenderHTML renders an HTML template: <name>.html.tmpl
func RenderHTML(name string, data any) (string, error) {
	filename := name + ".html.tmpl"
	tpl, err := htmpl.New(filename).Funcs(baseFuncs()).ParseFS(FS, filename)
	if err != nil {
		return "", fmt.Errorf("parse html %q: %w", filename, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// ApprovalSubject is the fixed subject line for the approval email.
const ApprovalSubject = "Votre demande de crédit a été approuvée - Contrat à signer"

// RenderApproval renders the approval email body.
func RenderApproval(data ApprovalData) (string, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	return RenderHTML("approval", data)
}
