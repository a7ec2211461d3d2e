// AngelaMos | 2026
// templates.go

package mail

import (
	"bytes"
	"html/template"
)

type codeMail struct {
	Name    string
	Code    string
	Minutes int
}

var verificationTmpl = template.Must(template.New("verification").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: #1a1a2e; padding: 24px; text-align: center;">
    <h1 style="color: #e94560; margin: 0;">Casino Remedial</h1>
  </div>
  <div style="padding: 24px; background-color: #f9f9f9;">
    <h2 style="color: #1a1a2e;">Hola {{.Name}},</h2>
    <p>Gracias por registrarte. Usa el siguiente código para verificar tu cuenta:</p>
    <div style="background-color: #1a1a2e; color: #e94560; font-size: 32px;
                letter-spacing: 8px; text-align: center; padding: 16px;
                margin: 24px 0; border-radius: 8px; font-weight: bold;">
      {{.Code}}
    </div>
    <p>Este código expira en <strong>{{.Minutes}} minutos</strong>.</p>
    <p style="color: #888; font-size: 12px;">
      Si no creaste esta cuenta, ignora este correo.
    </p>
  </div>
</div>
`))

var recoveryTmpl = template.Must(template.New("recovery").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: #1a1a2e; padding: 24px; text-align: center;">
    <h1 style="color: #e94560; margin: 0;">Casino Remedial</h1>
  </div>
  <div style="padding: 24px; background-color: #f9f9f9;">
    <h2 style="color: #1a1a2e;">Hola {{.Name}},</h2>
    <p>Recibimos una solicitud para restablecer tu contraseña.
       Usa el siguiente código:</p>
    <div style="background-color: #1a1a2e; color: #e94560; font-size: 32px;
                letter-spacing: 8px; text-align: center; padding: 16px;
                margin: 24px 0; border-radius: 8px; font-weight: bold;">
      {{.Code}}
    </div>
    <p>Este código expira en <strong>{{.Minutes}} minutos</strong>.</p>
    <p style="color: #888; font-size: 12px;">
      Si no solicitaste el cambio, tu cuenta sigue segura y puedes
      ignorar este correo.
    </p>
  </div>
</div>
`))

func renderVerification(name, code string) (string, error) {
	return render(verificationTmpl, codeMail{Name: name, Code: code, Minutes: 30})
}

func renderRecovery(name, code string) (string, error) {
	return render(recoveryTmpl, codeMail{Name: name, Code: code, Minutes: 15})
}

func render(t *template.Template, data codeMail) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
