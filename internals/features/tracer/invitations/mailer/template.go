package mailer

import (
	"bytes"
	"html/template"
	"time"

	"github.com/firmantawakal/simak-tracer-study/internals/helpers/dbtime"
)

const institution = "Universitas Dumai"

// InvitationData mengisi template email undangan.
type InvitationData struct {
	AlumniName  string
	SurveyTitle string
	SurveyURL   string
	ExpiresAt   time.Time
	ExpiryDays  int
}

func InvitationSubject(surveyTitle string) string {
	return "Undangan Survey: " + surveyTitle + " - " + institution
}

var invitationTmpl = template.Must(template.New("invitation").Parse(`<!DOCTYPE html>
<html lang="id">
<head>
	<meta charset="utf-8">
	<title>Undangan Survey Tracer Study</title>
</head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;line-height:1.6;color:#333;background:#f4f4f4;">
	<div style="max-width:600px;margin:0 auto;padding:20px;">
		<div style="background:#1e40af;color:#fff;padding:20px;text-align:center;border-radius:8px 8px 0 0;">
			<h1 style="margin:0;">{{.Institution}}</h1>
			<h2 style="margin:8px 0 0 0;font-weight:normal;">Tracer Study Program</h2>
		</div>
		<div style="background:#f9fafb;padding:30px;border-radius:0 0 8px 8px;">
			<p>Halo {{.AlumniName}},</p>
			<p>Kami dari {{.Institution}} mengundang Anda untuk berpartisipasi dalam survey tracer study.
			Jawaban Anda membantu kami meningkatkan kualitas pendidikan dan layanan kepada alumni.</p>
			<p><strong>Judul Survey:</strong> {{.SurveyTitle}}</p>
			<p style="text-align:center;">
				<a href="{{.SurveyURL}}" style="display:inline-block;background:#1e40af;color:#fff;padding:12px 24px;text-decoration:none;border-radius:6px;margin:20px 0;">Isi Survey Sekarang</a>
			</p>
			<p>Link survey hanya berlaku untuk satu kali pengisian dan akan kadaluarsa dalam {{.ExpiryDays}} hari
			({{.ExpiresAt}}). Jika tombol di atas tidak bisa dibuka, salin link berikut ke browser:</p>
			<p style="word-break:break-all;background:#e5e7eb;padding:10px;border-radius:4px;">{{.SurveyURL}}</p>
			<p>Terima kasih atas partisipasi Anda.</p>
			<p>Hormat kami,<br>{{.Institution}}<br>Alumni Relations Office</p>
		</div>
		<div style="text-align:center;color:#6b7280;font-size:12px;margin-top:20px;">
			<p>&copy; {{.Year}} {{.Institution}}. Email ini dikirim otomatis, mohon tidak dibalas.</p>
		</div>
	</div>
</body>
</html>
`))

var testTmpl = template.Must(template.New("test").Parse(`<!DOCTYPE html>
<html lang="id">
<body style="font-family:Arial,sans-serif;color:#333;">
	<h2>Tes Email {{.Institution}}</h2>
	<p>Konfigurasi SMTP tracer study berfungsi. Dikirim pada {{.SentAt}}.</p>
</body>
</html>
`))

// RenderInvitation menghasilkan body HTML undangan. Nilai input di-escape.
func RenderInvitation(d InvitationData) (string, error) {
	var buf bytes.Buffer
	err := invitationTmpl.Execute(&buf, map[string]any{
		"Institution": institution,
		"AlumniName":  d.AlumniName,
		"SurveyTitle": d.SurveyTitle,
		"SurveyURL":   d.SurveyURL,
		"ExpiryDays":  d.ExpiryDays,
		"ExpiresAt":   dbtime.ToLocal(d.ExpiresAt).Format("02/01/2006 15:04 MST"),
		"Year":        d.ExpiresAt.Year(),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// TestMessage membuat email uji coba untuk endpoint pengaturan.
func TestMessage(to string, now time.Time) (Message, error) {
	var buf bytes.Buffer
	if err := testTmpl.Execute(&buf, map[string]any{
		"Institution": institution,
		"SentAt":      dbtime.ToLocal(now).Format(time.RFC1123),
	}); err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Tes Email - " + institution, HTML: buf.String()}, nil
}
