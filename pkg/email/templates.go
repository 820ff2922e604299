package email

import (
	"fmt"
)

// TurnoEmailData contains the data needed for turno email templates.
type TurnoEmailData struct {
	Email             string
	PacienteNombre    string
	NutricionistaName string
	Fecha             string // YYYY-MM-DD
	Hora              string // HH:MM
	Modalidad         string
	CalendarURL       string
	AppName           string
}

// BuildTurnoConfirmationEmail creates the booking confirmation message.
func BuildTurnoConfirmationEmail(data TurnoEmailData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "Nutrito"
	}

	nombre := data.PacienteNombre
	if nombre == "" {
		nombre = "Hola"
	}

	subject := fmt.Sprintf("Turno confirmado para el %s a las %s", data.Fecha, data.Hora)

	textBody := fmt.Sprintf(`Hola %s,

Tu turno con %s quedó confirmado.

Fecha: %s
Hora: %s hs
Modalidad: %s

Agregalo a tu calendario:
%s

Gracias,
El equipo de %s`,
		nombre, data.NutricionistaName, data.Fecha, data.Hora, data.Modalidad, data.CalendarURL, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #16a34a;">Hola %s,</h2>
    <p>Tu turno con <strong>%s</strong> quedó confirmado.</p>
    <p style="background-color: #f3f4f6; padding: 15px; border-radius: 6px;">
        <strong>Fecha:</strong> %s<br>
        <strong>Hora:</strong> %s hs<br>
        <strong>Modalidad:</strong> %s
    </p>
    <p style="text-align: center; margin: 30px 0;">
        <a href="%s" style="background-color: #16a34a; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Agregar al calendario</a>
    </p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Gracias,<br>El equipo de %s</p>
</body>
</html>`,
		nombre, data.NutricionistaName, data.Fecha, data.Hora, data.Modalidad, data.CalendarURL, appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

// InvitationEmailData contains the data for manual patient invitations.
type InvitationEmailData struct {
	Email             string
	PacienteNombre    string
	NutricionistaName string
	TempPassword      string
	AppName           string
	BaseURL           string
}

// BuildPacienteInvitationEmail creates the invitation sent when a
// nutricionista registers a patient manually.
func BuildPacienteInvitationEmail(data InvitationEmailData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "Nutrito"
	}

	nombre := data.PacienteNombre
	if nombre == "" {
		nombre = "Hola"
	}

	subject := fmt.Sprintf("%s te invitó a %s", data.NutricionistaName, appName)

	textBody := fmt.Sprintf(`Hola %s,

%s te registró como paciente en %s.

Ingresá con este correo y la contraseña temporal de abajo, y cambiala en tu primer acceso:

Contraseña temporal: %s

%s

Gracias,
El equipo de %s`,
		nombre, data.NutricionistaName, appName, data.TempPassword, data.BaseURL, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Hola %s,</h2>
    <p><strong>%s</strong> te registró como paciente en %s.</p>
    <p>Ingresá con este correo y la contraseña temporal de abajo, y cambiala en tu primer acceso:</p>
    <p style="background-color: #f3f4f6; padding: 10px 15px; border-radius: 4px; font-family: monospace; font-size: 16px;">%s</p>
    <p style="text-align: center; margin: 30px 0;">
        <a href="%s" style="background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Ingresar</a>
    </p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Gracias,<br>El equipo de %s</p>
</body>
</html>`,
		nombre, data.NutricionistaName, appName, data.TempPassword, data.BaseURL, appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

// PlanEmailData contains the data for plan delivery notices.
type PlanEmailData struct {
	Email             string
	PacienteNombre    string
	NutricionistaName string
	PlanURL           string
	AppName           string
}

// BuildPlanEnviadoEmail creates the notice sent when a plan moves to enviado.
func BuildPlanEnviadoEmail(data PlanEmailData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "Nutrito"
	}

	nombre := data.PacienteNombre
	if nombre == "" {
		nombre = "Hola"
	}

	subject := "Tu plan alimentario está disponible"

	textBody := fmt.Sprintf(`Hola %s,

%s te envió tu plan alimentario. Ya podés consultarlo desde tu cuenta:

%s

Gracias,
El equipo de %s`,
		nombre, data.NutricionistaName, data.PlanURL, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #16a34a;">Hola %s,</h2>
    <p><strong>%s</strong> te envió tu plan alimentario. Ya podés consultarlo desde tu cuenta.</p>
    <p style="text-align: center; margin: 30px 0;">
        <a href="%s" style="background-color: #16a34a; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Ver mi plan</a>
    </p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Gracias,<br>El equipo de %s</p>
</body>
</html>`,
		nombre, data.NutricionistaName, data.PlanURL, appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}
