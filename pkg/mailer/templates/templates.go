package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names used by EmailJob.Template.
const (
	Welcome         = "welcome"
	PasswordChanged = "password_changed"
)

var welcomeTpl = template.Must(template.New(Welcome).Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>Welcome to Connectify, {{.Name}}!</h2>
  <p>Your account <b>{{.Email}}</b> is ready. Set up your profile, add your
  education and projects, and share your first post.</p>
  <p>— The Connectify team</p>
</body>
</html>`))

var passwordChangedTpl = template.Must(template.New(PasswordChanged).Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>Your password was changed</h2>
  <p>Hi {{.Name}}, the password for <b>{{.Email}}</b> was just reset through
  the security-question recovery flow.</p>
  <p>If this wasn't you, reset your password again immediately.</p>
  <p>— The Connectify team</p>
</body>
</html>`))

type renderData struct {
	Name  string
	Email string
}

func fromMap(data map[string]any) renderData {
	return renderData{
		Name:  fmt.Sprintf("%v", data["Name"]),
		Email: fmt.Sprintf("%v", data["Email"]),
	}
}

// Render produces subject, plain-text fallback, and HTML body for a named
// template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	d := fromMap(data)
	var tpl *template.Template
	switch name {
	case Welcome:
		subject = "Welcome to Connectify"
		text = "Welcome to Connectify, " + d.Name + "! Your account is ready."
		tpl = welcomeTpl
	case PasswordChanged:
		subject = "Your Connectify password was changed"
		text = "Hi " + d.Name + ", your Connectify password was just reset."
		tpl = passwordChangedTpl
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, d); err != nil {
		return "", "", "", err
	}
	return subject, text, buf.String(), nil
}
