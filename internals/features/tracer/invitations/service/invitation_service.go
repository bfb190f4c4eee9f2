package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	alumniModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/model"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/invitations/mailer"
	surveyModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/model"
	tokenService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
)

// SendError mencatat satu penerima yang gagal.
type SendError struct {
	AlumniID uuid.UUID `json:"alumni_id"`
	Email    string    `json:"email"`
	Error    string    `json:"error"`
}

// Report adalah hasil pengiriman. Kegagalan satu penerima tidak
// menghentikan penerima lain.
type Report struct {
	Sent    int         `json:"sent"`
	Failed  int         `json:"failed"`
	Skipped int         `json:"skipped"`
	Errors  []SendError `json:"errors"`
}

const defaultSendTimeout = 30 * time.Second

type Service struct {
	tokens      *tokenService.Service
	mail        mailer.Mailer
	concurrency int
	sendTimeout time.Duration
}

func New(tokens *tokenService.Service, m mailer.Mailer) *Service {
	mc := tokens.Config().Mail
	n := mc.Concurrency
	if n < 1 {
		n = 1
	}
	timeout := mc.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Service{tokens: tokens, mail: m, concurrency: n, sendTimeout: timeout}
}

type outcome struct {
	idx int
	err *SendError
}

// Invite menerbitkan secret baru per alumni lalu mengirim email undangan.
// alumniIDs kosong berarti semua alumni yang belum mengisi survey.
// Batch tidak ikut deadline request; tiap pesan dibatasi MAIL_SEND_TIMEOUT_SECONDS.
func (s *Service) Invite(ctx context.Context, surveyID uuid.UUID, alumniIDs []uuid.UUID, expiryDays int) (*Report, error) {
	ctx = context.WithoutCancel(ctx)
	rcpt, err := s.tokens.LoadRecipients(ctx, surveyID, alumniIDs)
	if err != nil {
		return nil, err
	}
	report := s.deliver(ctx, rcpt.Survey, rcpt.Targets, expiryDays)
	report.Skipped = len(rcpt.Skipped)
	return report, nil
}

// Resend mengirim ulang ke alumni yang masih memegang token aktif.
// Token lama baru dimatikan setelah secret baru terkirim.
func (s *Service) Resend(ctx context.Context, surveyID uuid.UUID, expiryDays int) (*Report, error) {
	ctx = context.WithoutCancel(ctx)
	if _, err := s.tokens.Survey(ctx, surveyID); err != nil {
		return nil, err
	}
	pending, err := s.tokens.PendingAlumni(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return &Report{Errors: []SendError{}}, nil
	}
	return s.Invite(ctx, surveyID, pending, expiryDays)
}

func (s *Service) deliver(ctx context.Context, survey *surveyModel.Survey, targets []alumniModel.Alumni, expiryDays int) *Report {
	p := pool.NewWithResults[outcome]().WithMaxGoroutines(s.concurrency)
	for i := range targets {
		idx, a := i, targets[i]
		p.Go(func() outcome {
			if err := s.sendOne(ctx, survey, a, expiryDays); err != nil {
				log.Printf("[MAIL] gagal kirim ke %s (survey=%s): %v", a.Email, survey.ID, err)
				return outcome{idx: idx, err: &SendError{AlumniID: a.ID, Email: a.Email, Error: publicSendError(err)}}
			}
			return outcome{idx: idx}
		})
	}
	results := p.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].idx < results[j].idx })

	report := &Report{Errors: []SendError{}}
	for _, r := range results {
		if r.err != nil {
			report.Failed++
			report.Errors = append(report.Errors, *r.err)
			continue
		}
		report.Sent++
	}
	log.Printf("[MAIL] survey=%s sent=%d failed=%d", survey.ID, report.Sent, report.Failed)
	return report
}

func (s *Service) sendOne(ctx context.Context, survey *surveyModel.Survey, a alumniModel.Alumni, expiryDays int) error {
	msgCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	issued, err := s.tokens.IssueForAlumni(msgCtx, survey.ID, a, expiryDays)
	if err != nil {
		return err
	}
	if err := s.send(msgCtx, survey, a, issued, expiryDays); err != nil {
		// ctx induk: token harus tetap dibersihkan walau msgCtx sudah habis
		if derr := s.tokens.DiscardIssued(ctx, issued); derr != nil {
			log.Printf("[MAIL] token alumni=%s gagal dibuang: %v", a.ID, derr)
		}
		return err
	}
	if _, err := s.tokens.ConfirmIssued(ctx, issued); err != nil {
		log.Printf("[MAIL] token lama alumni=%s gagal dimatikan: %v", a.ID, err)
	}
	return nil
}

func (s *Service) send(ctx context.Context, survey *surveyModel.Survey, a alumniModel.Alumni, issued *tokenService.IssuedToken, expiryDays int) error {
	days := expiryDays
	if days == 0 {
		days = s.tokens.Config().Token.ExpiryDays
	}
	html, err := mailer.RenderInvitation(mailer.InvitationData{
		AlumniName:  a.Name,
		SurveyTitle: survey.Title,
		SurveyURL:   issued.URL,
		ExpiresAt:   issued.ExpiresAt,
		ExpiryDays:  days,
	})
	if err != nil {
		return err
	}
	if err := s.mail.Send(ctx, mailer.Message{
		To:      a.Email,
		ToName:  a.Name,
		Subject: mailer.InvitationSubject(survey.Title),
		HTML:    html,
	}); err != nil {
		return errors.Join(tokenService.ErrDelivery, err)
	}
	return nil
}

// SendTest mengirim email uji coba tanpa menyentuh token.
func (s *Service) SendTest(ctx context.Context, to string) error {
	msg, err := mailer.TestMessage(to, s.tokens.Now())
	if err != nil {
		return err
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		log.Printf("[MAIL] tes email ke %s gagal: %v", to, err)
		return errors.Join(tokenService.ErrDelivery, err)
	}
	return nil
}

// publicSendError menyembunyikan detail SMTP/DB dari laporan.
func publicSendError(err error) string {
	switch {
	case errors.Is(err, tokenService.ErrDelivery):
		return tokenService.MsgDelivery
	case errors.Is(err, tokenService.ErrPersistence):
		return "Gagal membuat token"
	default:
		return tokenService.ReasonFor(err).Message
	}
}
