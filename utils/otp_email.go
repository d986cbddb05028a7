package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// SendReservationOTPEmail sends the one-time verification code for a pending
// room reservation. When SMTP env vars are missing the code is logged instead
// so local development is never blocked.
func SendReservationOTPEmail(recipientEmail, name, otpCode, confirmationCode string, windowMinutes int) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] otp to:%s reservation:%s code:%s", recipientEmail, confirmationCode, otpCode)
		return nil
	}

	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}

	name = safe(name)
	otpCode = safe(otpCode)
	confirmationCode = safe(confirmationCode)

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	to := []string{recipientEmail}
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	subject := fmt.Sprintf("Your Hotel Indigo verification code (reservation %s)", confirmationCode)
	boundary := "----=_OTP_EMAIL_BOUNDARY"

	plainBody := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your verification code for reservation %s is: %s\n"+
			"The code expires in %d minutes.\n\n"+
			"If you did not request this reservation, you can ignore this email.\n",
		name, confirmationCode, otpCode, windowMinutes,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Verification code</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:640px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
.code { font-size:32px; letter-spacing:8px; font-weight:bold; color:#0b74ff; margin:16px 0; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>Confirm your reservation</h2>
    <p>Hi %s,</p>
    <p>Enter this code to confirm reservation <strong>%s</strong>:</p>
    <div class="code">%s</div>
    <p>The code expires in %d minutes.</p>
    <p>If you did not request this reservation, you can ignore this email.</p>
  </div>
</div>
</body>
</html>`,
		name, confirmationCode, otpCode, windowMinutes,
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipientEmail))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, smtpUser, to, []byte(sb.String())); err != nil {
		log.Printf("Failed to send OTP email to %s: %v", recipientEmail, err)
		return err
	}

	log.Printf("OTP email sent to %s", recipientEmail)
	return nil
}
