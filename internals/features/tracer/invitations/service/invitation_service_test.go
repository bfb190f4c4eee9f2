package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/invitations/mailer"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/codec"
	tokenModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/model"
	tokenRepo "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/repository"
	tokenService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
	"github.com/firmantawakal/simak-tracer-study/internals/testutil"
)

func setupInvitations(t *testing.T) (*Service, *tokenService.Service, *mailer.MockMailer, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	clock := testutil.NewFixedClock()
	tokens := tokenService.New(db, testutil.TestConfig()).WithClock(clock.Now)
	ctrl := gomock.NewController(t)
	m := mailer.NewMockMailer(ctrl)
	return New(tokens, m), tokens, m, db
}

func validTokens(t *testing.T, db *gorm.DB, surveyID, alumniID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&tokenModel.SurveyToken{}).
		Where("survey_id = ? AND alumni_id = ? AND is_used = ? AND expires_at > ?", surveyID, alumniID, false, testutil.NewFixedClock().Now()).
		Count(&n).Error)
	return n
}

func TestInviteReportsPartialFailure(t *testing.T) {
	t.Parallel()
	svc, _, m, db := setupInvitations(t)
	ctx := context.Background()

	survey := testutil.CreateSurvey(t, db, "Tracer 2024", testutil.RatingQuestion("q1"))
	budi := testutil.CreateAlumni(t, db, "Budi")
	dewi := testutil.CreateAlumni(t, db, "Dewi")

	var (
		mu      sync.Mutex
		subject []string
	)
	m.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) error {
		mu.Lock()
		subject = append(subject, msg.Subject)
		mu.Unlock()
		if msg.To == dewi.Email {
			return errors.New("550 mailbox unavailable")
		}
		assert.Contains(t, msg.HTML, "https://tracer.test/survey/")
		return nil
	}).Times(2)

	report, err := svc.Invite(ctx, survey.ID, []uuid.UUID{budi.ID, dewi.ID}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, dewi.Email, report.Errors[0].Email)
	assert.Equal(t, tokenService.MsgDelivery, report.Errors[0].Error)
	assert.NotContains(t, report.Errors[0].Error, "550")

	assert.Equal(t, []string{"Undangan Survey: Tracer 2024 - Universitas Dumai", "Undangan Survey: Tracer 2024 - Universitas Dumai"}, subject)
	assert.EqualValues(t, 1, validTokens(t, db, survey.ID, budi.ID))
	assert.Zero(t, validTokens(t, db, survey.ID, dewi.ID), "token for a failed send is discarded")
}

func TestFailedResendKeepsOldLinkWorking(t *testing.T) {
	t.Parallel()
	svc, tokens, m, db := setupInvitations(t)
	ctx := context.Background()

	survey := testutil.CreateSurvey(t, db, "Tracer 2024", testutil.RatingQuestion("q1"))
	dewi := testutil.CreateAlumni(t, db, "Dewi")
	res, err := tokens.Generate(ctx, survey.ID, []uuid.UUID{dewi.ID}, tokenService.GenerateOptions{})
	require.NoError(t, err)
	oldSecret := res.Issued[0].Token

	m.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("dial tcp: connection refused")).Times(1)

	report, err := svc.Resend(ctx, survey.ID, 0)
	require.NoError(t, err)
	assert.Zero(t, report.Sent)
	assert.Equal(t, 1, report.Failed)

	access, err := tokens.Validate(ctx, oldSecret)
	require.NoError(t, err, "old link must survive a failed send")
	assert.Equal(t, "Dewi", access.AlumniName)

	count, err := tokenRepo.CountForSurvey(db, survey.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestInviteBatchOutlivesRequestDeadline(t *testing.T) {
	t.Parallel()
	svc, _, m, db := setupInvitations(t)

	survey := testutil.CreateSurvey(t, db, "Tracer 2024", testutil.RatingQuestion("q1"))
	var ids []uuid.UUID
	for _, name := range []string{"Ani", "Bayu", "Citra", "Dimas", "Eka", "Fajar"} {
		ids = append(ids, testutil.CreateAlumni(t, db, name).ID)
	}

	m.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ mailer.Message) error {
		select {
		case <-time.After(40 * time.Millisecond):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}).Times(len(ids))

	// deadline request jauh lebih pendek dari total waktu kirim (6 pesan, 2 paralel)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	report, err := svc.Invite(ctx, survey.ID, ids, 0)
	require.NoError(t, err)
	assert.Equal(t, len(ids), report.Sent)
	assert.Zero(t, report.Failed)
	assert.Empty(t, report.Errors)
}

func TestSlowSendTimesOutPerMessage(t *testing.T) {
	t.Parallel()
	svc, tokens, m, db := setupInvitations(t)
	svc.sendTimeout = 30 * time.Millisecond
	ctx := context.Background()

	survey := testutil.CreateSurvey(t, db, "Tracer 2024", testutil.RatingQuestion("q1"))
	slow := testutil.CreateAlumni(t, db, "Lambat")
	fast := testutil.CreateAlumni(t, db, "Cepat")
	res, err := tokens.Generate(ctx, survey.ID, []uuid.UUID{slow.ID, fast.ID}, tokenService.GenerateOptions{})
	require.NoError(t, err)
	var slowSecret string
	for _, it := range res.Issued {
		if it.AlumniID == slow.ID {
			slowSecret = it.Token
		}
	}

	m.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, msg mailer.Message) error {
		if msg.To != slow.Email {
			return nil
		}
		<-ctx.Done()
		return ctx.Err()
	}).Times(2)

	report, err := svc.Resend(ctx, survey.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, slow.Email, report.Errors[0].Email)

	_, err = tokens.Validate(ctx, slowSecret)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, validTokens(t, db, survey.ID, slow.ID))
	assert.EqualValues(t, 1, validTokens(t, db, survey.ID, fast.ID))
}

func TestResendIssuesFreshSecretOnlyToPendingAlumni(t *testing.T) {
	t.Parallel()
	svc, tokens, m, db := setupInvitations(t)
	ctx := context.Background()

	survey := testutil.CreateSurvey(t, db, "Tracer 2024", testutil.RatingQuestion("q1"))
	done := testutil.CreateAlumni(t, db, "Sudah Isi")
	pending := testutil.CreateAlumni(t, db, "Belum Isi")
	testutil.CreateAlumni(t, db, "Tanpa Token")

	res, err := tokens.Generate(ctx, survey.ID, []uuid.UUID{done.ID, pending.ID}, tokenService.GenerateOptions{})
	require.NoError(t, err)
	var oldPending string
	for _, it := range res.Issued {
		if it.AlumniID == done.ID {
			require.NoError(t, tokenRepo.MarkUsed(db, codec.Digest(it.Token), tokens.Now()))
		} else {
			oldPending = it.Token
		}
	}

	var sentURL string
	m.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) error {
		assert.Equal(t, pending.Email, msg.To)
		i := strings.Index(msg.HTML, "https://tracer.test/survey/")
		if i < 0 {
			return errors.New("url tidak ditemukan")
		}
		sentURL = msg.HTML[i : i+len("https://tracer.test/survey/")+codec.SecretLength]
		return nil
	}).Times(1)

	report, err := svc.Resend(ctx, survey.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Zero(t, report.Failed)

	_, err = tokens.Validate(ctx, oldPending)
	assert.ErrorIs(t, err, tokenService.ErrTokenExpired, "old link must stop working")

	fresh := strings.TrimPrefix(sentURL, "https://tracer.test/survey/")
	assert.NotEqual(t, oldPending, fresh)
	access, err := tokens.Validate(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, "Belum Isi", access.AlumniName)
}

func TestInviteSkipsRespondersAndUnknownSurvey(t *testing.T) {
	t.Parallel()
	svc, tokens, _, db := setupInvitations(t)
	ctx := context.Background()

	survey := testutil.CreateSurvey(t, db, "Tracer 2024", testutil.RatingQuestion("q1"))
	a := testutil.CreateAlumni(t, db, "Sudah Isi")
	res, err := tokens.Generate(ctx, survey.ID, []uuid.UUID{a.ID}, tokenService.GenerateOptions{})
	require.NoError(t, err)
	require.NoError(t, tokenRepo.MarkUsed(db, codec.Digest(res.Issued[0].Token), tokens.Now()))

	report, err := svc.Invite(ctx, survey.ID, nil, 0)
	require.NoError(t, err)
	assert.Zero(t, report.Sent)
	assert.Equal(t, 1, report.Skipped)

	_, err = svc.Invite(ctx, uuid.New(), nil, 0)
	assert.ErrorIs(t, err, tokenService.ErrSurveyNotFound)
	_, err = svc.Resend(ctx, uuid.New(), 0)
	assert.ErrorIs(t, err, tokenService.ErrSurveyNotFound)
}

func TestSendTestWrapsDeliveryError(t *testing.T) {
	t.Parallel()
	svc, _, m, _ := setupInvitations(t)

	m.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("dial tcp: refused"))
	err := svc.SendTest(context.Background(), "admin@kampus.test")
	assert.ErrorIs(t, err, tokenService.ErrDelivery)
	assert.Equal(t, "DELIVERY_FAILURE", tokenService.ReasonFor(err).Code)
}
