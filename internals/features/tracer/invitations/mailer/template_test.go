package mailer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvitationSubject(t *testing.T) {
	assert.Equal(t, "Undangan Survey: Tracer 2024 - Universitas Dumai", InvitationSubject("Tracer 2024"))
}

func TestRenderInvitationEscapesInput(t *testing.T) {
	html, err := RenderInvitation(InvitationData{
		AlumniName:  "<b>Budi</b>",
		SurveyTitle: "Tracer 2024",
		SurveyURL:   "https://tracer.test/survey/abc",
		ExpiresAt:   time.Date(2025, 3, 17, 8, 0, 0, 0, time.UTC),
		ExpiryDays:  7,
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Halo &lt;b&gt;Budi&lt;/b&gt;")
	assert.Contains(t, html, `href="https://tracer.test/survey/abc"`)
	assert.Contains(t, html, "7 hari")
	assert.Contains(t, html, "17/03/2025 15:00")
	assert.False(t, strings.Contains(html, "<b>Budi</b>"))
}

func TestTestMessage(t *testing.T) {
	msg, err := TestMessage("admin@kampus.test", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "admin@kampus.test", msg.To)
	assert.Contains(t, msg.HTML, "Konfigurasi SMTP")
}
