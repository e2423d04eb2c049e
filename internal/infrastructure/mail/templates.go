package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/staffcore/employee-system/internal/core/ports"
)

var newAccountTmpl = template.Must(template.New("new_account").Parse(`<html>
<body style="font-family: sans-serif;">
  <h2>{{.ProjectName}}</h2>
  <p>Hi {{.Username}},</p>
  <p>An account has been created for you. You can sign in with:</p>
  <ul>
    <li>Username: <strong>{{.Username}}</strong></li>
    <li>Password: <strong>{{.Password}}</strong></li>
  </ul>
  <p>Please change your password after your first login.</p>
</body>
</html>`))

var resetPasswordTmpl = template.Must(template.New("reset_password").Parse(`<html>
<body style="font-family: sans-serif;">
  <h2>{{.ProjectName}}</h2>
  <p>Hi {{.Username}},</p>
  <p>We received a request to reset your password. The link below is valid
  for {{.ValidHours}} hours:</p>
  <p><a href="{{.Link}}">Reset your password</a></p>
  <p>If you did not request this, you can safely ignore this email.</p>
</body>
</html>`))

// Composer renders the account notification emails. It implements
// ports.MailComposer.
type Composer struct {
	projectName  string
	frontendHost string
	validHours   int
}

// NewComposer creates a Composer. frontendHost is the base URL reset links
// point at; validHours is shown in the reset email body and should match the
// reset-token TTL.
func NewComposer(projectName, frontendHost string, validHours int) *Composer {
	return &Composer{projectName: projectName, frontendHost: frontendHost, validHours: validHours}
}

// NewAccountEmail renders the welcome message for a freshly created account.
func (c *Composer) NewAccountEmail(to, username, password string) ports.Email {
	var body bytes.Buffer
	_ = newAccountTmpl.Execute(&body, map[string]any{
		"ProjectName": c.projectName,
		"Username":    username,
		"Password":    password,
	})
	return ports.Email{
		To:       to,
		Subject:  fmt.Sprintf("%s - New account for user %s", c.projectName, username),
		HTMLBody: body.String(),
	}
}

// ResetPasswordEmail renders the password-recovery message carrying the
// signed reset token as a link parameter.
func (c *Composer) ResetPasswordEmail(to, username, token string) ports.Email {
	var body bytes.Buffer
	_ = resetPasswordTmpl.Execute(&body, map[string]any{
		"ProjectName": c.projectName,
		"Username":    username,
		"ValidHours":  c.validHours,
		"Link":        fmt.Sprintf("%s/login/reset-password?token=%s", c.frontendHost, token),
	})
	return ports.Email{
		To:       to,
		Subject:  fmt.Sprintf("%s - Password recovery for user %s", c.projectName, username),
		HTMLBody: body.String(),
	}
}
