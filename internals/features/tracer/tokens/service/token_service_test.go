package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/codec"
	tokenModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/model"
	tokenRepo "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/repository"
	"github.com/firmantawakal/simak-tracer-study/internals/testutil"
)

func setupService(t *testing.T) (*Service, *gorm.DB, *testutil.FixedClock) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	clock := testutil.NewFixedClock()
	svc := New(db, testutil.TestConfig()).WithClock(clock.Now)
	return svc, db, clock
}

func TestValidateReturnsQuestionsAndAlumniName(t *testing.T) {
	t.Parallel()
	svc, db, _ := setupService(t)
	ctx := context.Background()

	alumni := testutil.CreateAlumni(t, db, "Siti Rahma")
	survey := testutil.CreateSurvey(t, db, "Tracer 2024", testutil.RatingQuestion("q1"))

	res, err := svc.Generate(ctx, survey.ID, []uuid.UUID{alumni.ID}, GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, res.Issued, 1)

	issued := res.Issued[0]
	assert.True(t, codec.LooksLikeSecret(issued.Token))
	assert.Equal(t, "https://tracer.test/survey/"+issued.Token, issued.URL)

	stored, err := tokenRepo.FindByHash(db, codec.Digest(issued.Token))
	require.NoError(t, err, "stored digest must equal digest recomputed from the secret")
	assert.Equal(t, alumni.ID, stored.AlumniID)

	access, err := svc.Validate(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "Siti Rahma", access.AlumniName)
	assert.Equal(t, survey.ID, access.SurveyID)
	require.Len(t, access.Questions, 1)
	assert.Equal(t, "q1", access.Questions[0].ID)
}

func TestValidateUnknownAndMalformedTokens(t *testing.T) {
	t.Parallel()
	svc, _, _ := setupService(t)
	ctx := context.Background()

	unknown, err := codec.GenerateSecret()
	require.NoError(t, err)

	for _, tok := range []string{unknown, "", "not-a-token", unknown[:40]} {
		_, err := svc.Validate(ctx, tok)
		assert.ErrorIs(t, err, ErrTokenNotFound, "token %q", tok)
	}
}

func TestValidateFailureOrder(t *testing.T) {
	t.Parallel()
	svc, db, clock := setupService(t)
	ctx := context.Background()

	alumni := testutil.CreateAlumni(t, db, "Budi")
	survey := testutil.CreateSurvey(t, db, "Tracer", testutil.RatingQuestion("q1"))

	res, err := svc.Generate(ctx, survey.ID, []uuid.UUID{alumni.ID}, GenerateOptions{ExpiryDays: 1})
	require.NoError(t, err)
	secret := res.Issued[0].Token
	hash := codec.Digest(secret)

	// survey nonaktif
	testutil.SetSurveyActive(t, db, &survey, false)
	_, err = svc.Validate(ctx, secret)
	assert.ErrorIs(t, err, ErrSurveyInactive)

	// kadaluarsa lebih dulu dilaporkan daripada survey nonaktif
	clock.Advance(25 * time.Hour)
	_, err = svc.Validate(ctx, secret)
	assert.ErrorIs(t, err, ErrTokenExpired)

	// terpakai lebih dulu dilaporkan daripada kadaluarsa; MarkUsed menolak
	// token kadaluarsa, jadi flag diset langsung
	require.NoError(t, db.Model(&tokenModel.SurveyToken{}).Where("token_hash = ?", hash).Update("is_used", true).Error)
	_, err = svc.Validate(ctx, secret)
	assert.ErrorIs(t, err, ErrTokenAlreadyUsed)
}

func TestValidateExpiredEvenWhenUnused(t *testing.T) {
	t.Parallel()
	svc, db, clock := setupService(t)
	ctx := context.Background()

	alumni := testutil.CreateAlumni(t, db, "Dewi")
	survey := testutil.CreateSurvey(t, db, "Tracer", testutil.RatingQuestion("q1"))
	res, err := svc.Generate(ctx, survey.ID, []uuid.UUID{alumni.ID}, GenerateOptions{ExpiryDays: 7})
	require.NoError(t, err)

	clock.Advance(7*24*time.Hour + time.Second)
	_, err = svc.Validate(ctx, res.Issued[0].Token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateSurveyPastDeadline(t *testing.T) {
	t.Parallel()
	svc, db, clock := setupService(t)
	ctx := context.Background()

	alumni := testutil.CreateAlumni(t, db, "Eka")
	survey := testutil.CreateSurvey(t, db, "Tracer", testutil.RatingQuestion("q1"))
	res, err := svc.Generate(ctx, survey.ID, []uuid.UUID{alumni.ID}, GenerateOptions{})
	require.NoError(t, err)

	testutil.SetSurveyDeadline(t, db, &survey, clock.Now().Add(time.Hour))
	_, err = svc.Validate(ctx, res.Issued[0].Token)
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	_, err = svc.Validate(ctx, res.Issued[0].Token)
	assert.ErrorIs(t, err, ErrSurveyInactive)
}

func TestGenerateTwiceRetiresPreviousBatch(t *testing.T) {
	t.Parallel()
	svc, db, _ := setupService(t)
	ctx := context.Background()

	a1 := testutil.CreateAlumni(t, db, "Alumni Satu")
	a2 := testutil.CreateAlumni(t, db, "Alumni Dua")
	survey := testutil.CreateSurvey(t, db, "Tracer", testutil.RatingQuestion("q1"))
	ids := []uuid.UUID{a1.ID, a2.ID}

	first, err := svc.Generate(ctx, survey.ID, ids, GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, first.Issued, 2)
	assert.Empty(t, first.Reused)

	second, err := svc.Generate(ctx, survey.ID, ids, GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, second.Issued, 2)
	assert.EqualValues(t, 2, second.Retired)

	for _, old := range first.Issued {
		_, err := svc.Validate(ctx, old.Token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	}
	for _, fresh := range second.Issued {
		_, err := svc.Validate(ctx, fresh.Token)
		assert.NoError(t, err)
	}

	total, err := tokenRepo.CountForSurvey(db, survey.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
}

func TestGenerateReuseExistingKeepsValidTokens(t *testing.T) {
	t.Parallel()
	svc, db, _ := setupService(t)
	ctx := context.Background()

	a1 := testutil.CreateAlumni(t, db, "Alumni Satu")
	a2 := testutil.CreateAlumni(t, db, "Alumni Dua")
	survey := testutil.CreateSurvey(t, db, "Tracer", testutil.RatingQuestion("q1"))

	first, err := svc.Generate(ctx, survey.ID, []uuid.UUID{a1.ID}, GenerateOptions{})
	require.NoError(t, err)

	second, err := svc.Generate(ctx, survey.ID, []uuid.UUID{a1.ID, a2.ID}, GenerateOptions{ReuseExisting: true})
	require.NoError(t, err)
	require.Len(t, second.Reused, 1)
	assert.Equal(t, a1.ID, second.Reused[0].AlumniID)
	require.Len(t, second.Issued, 1)
	assert.Equal(t, a2.ID, second.Issued[0].AlumniID)

	_, err = svc.Validate(ctx, first.Issued[0].Token)
	assert.NoError(t, err, "reused token stays valid")
}

func TestGenerateSkipsAlumniWhoAlreadyResponded(t *testing.T) {
	t.Parallel()
	svc, db, clock := setupService(t)
	ctx := context.Background()

	a1 := testutil.CreateAlumni(t, db, "Sudah Isi")
	a2 := testutil.CreateAlumni(t, db, "Belum Isi")
	survey := testutil.CreateSurvey(t, db, "Tracer", testutil.RatingQuestion("q1"))

	first, err := svc.Generate(ctx, survey.ID, []uuid.UUID{a1.ID}, GenerateOptions{})
	require.NoError(t, err)
	require.NoError(t, tokenRepo.MarkUsed(db, codec.Digest(first.Issued[0].Token), clock.Now()))

	second, err := svc.Generate(ctx, survey.ID, nil, GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, second.Skipped, 1)
	assert.Equal(t, a1.ID, second.Skipped[0].AlumniID)
	require.Len(t, second.Issued, 1)
	assert.Equal(t, a2.ID, second.Issued[0].AlumniID)
}

func TestGenerateRejectsUnknownInputs(t *testing.T) {
	t.Parallel()
	svc, db, _ := setupService(t)
	ctx := context.Background()

	survey := testutil.CreateSurvey(t, db, "Tracer", testutil.RatingQuestion("q1"))

	_, err := svc.Generate(ctx, uuid.New(), nil, GenerateOptions{})
	assert.ErrorIs(t, err, ErrSurveyNotFound)

	missing := uuid.New()
	_, err = svc.Generate(ctx, survey.ID, []uuid.UUID{missing}, GenerateOptions{})
	var unknown *UnknownAlumniError
	require.True(t, errors.As(err, &unknown), "got %v", err)
	assert.Equal(t, []string{missing.String()}, unknown.IDs)

	_, err = svc.Generate(ctx, survey.ID, nil, GenerateOptions{ExpiryDays: 366})
	assert.ErrorIs(t, err, ErrInvalidExpiry)

	count, err := tokenRepo.CountForSurvey(db, survey.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIssueForAlumniRotatesOnlyThatPair(t *testing.T) {
	t.Parallel()
	svc, db, _ := setupService(t)
	ctx := context.Background()

	a1 := testutil.CreateAlumni(t, db, "Alumni Satu")
	a2 := testutil.CreateAlumni(t, db, "Alumni Dua")
	survey := testutil.CreateSurvey(t, db, "Tracer", testutil.RatingQuestion("q1"))

	first, err := svc.Generate(ctx, survey.ID, []uuid.UUID{a1.ID, a2.ID}, GenerateOptions{})
	require.NoError(t, err)

	fresh, err := svc.IssueForAlumni(ctx, survey.ID, a1, 0)
	require.NoError(t, err)
	assert.NotEqual(t, first.Issued[0].Token, fresh.Token)

	// sebelum dikonfirmasi token lama masih berlaku
	for _, it := range first.Issued {
		_, err := svc.Validate(ctx, it.Token)
		assert.NoError(t, err)
	}

	retired, err := svc.ConfirmIssued(ctx, fresh)
	require.NoError(t, err)
	assert.EqualValues(t, 1, retired)

	for _, it := range first.Issued {
		_, err := svc.Validate(ctx, it.Token)
		if it.AlumniID == a1.ID {
			assert.ErrorIs(t, err, ErrTokenExpired)
		} else {
			assert.NoError(t, err)
		}
	}
	_, err = svc.Validate(ctx, fresh.Token)
	assert.NoError(t, err)
}

func TestDiscardIssuedKeepsPreviousToken(t *testing.T) {
	t.Parallel()
	svc, db, _ := setupService(t)
	ctx := context.Background()

	a := testutil.CreateAlumni(t, db, "Alumni Satu")
	survey := testutil.CreateSurvey(t, db, "Tracer", testutil.RatingQuestion("q1"))

	first, err := svc.Generate(ctx, survey.ID, []uuid.UUID{a.ID}, GenerateOptions{})
	require.NoError(t, err)

	fresh, err := svc.IssueForAlumni(ctx, survey.ID, a, 0)
	require.NoError(t, err)
	require.NoError(t, svc.DiscardIssued(ctx, fresh))

	_, err = svc.Validate(ctx, fresh.Token)
	assert.ErrorIs(t, err, ErrTokenNotFound)
	_, err = svc.Validate(ctx, first.Issued[0].Token)
	assert.NoError(t, err)

	count, err := tokenRepo.CountForSurvey(db, survey.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestExtendAndDeleteExpired(t *testing.T) {
	t.Parallel()
	svc, db, clock := setupService(t)
	ctx := context.Background()

	a1 := testutil.CreateAlumni(t, db, "Alumni Satu")
	a2 := testutil.CreateAlumni(t, db, "Alumni Dua")
	survey := testutil.CreateSurvey(t, db, "Tracer", testutil.RatingQuestion("q1"))

	res, err := svc.Generate(ctx, survey.ID, []uuid.UUID{a1.ID, a2.ID}, GenerateOptions{ExpiryDays: 1})
	require.NoError(t, err)
	require.NoError(t, tokenRepo.MarkUsed(db, codec.Digest(res.Issued[0].Token), clock.Now()))

	n, err := svc.Extend(ctx, survey.ID, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "only the unused valid token is extended")

	clock.Advance(5 * 24 * time.Hour)
	_, err = svc.Validate(ctx, res.Issued[1].Token)
	assert.NoError(t, err)

	clock.Advance(6 * 24 * time.Hour)
	deleted, err := svc.DeleteExpired(ctx, survey.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var left []tokenModel.SurveyToken
	require.NoError(t, db.Find(&left, "survey_id = ?", survey.ID).Error)
	require.Len(t, left, 1)
	assert.True(t, left[0].IsUsed, "consumed tokens survive cleanup")
}

func TestListShowsStatus(t *testing.T) {
	t.Parallel()
	svc, db, clock := setupService(t)
	ctx := context.Background()

	a1 := testutil.CreateAlumni(t, db, "Alumni Satu")
	survey := testutil.CreateSurvey(t, db, "Tracer", testutil.RatingQuestion("q1"))
	_, err := svc.Generate(ctx, survey.ID, []uuid.UUID{a1.ID}, GenerateOptions{ExpiryDays: 1})
	require.NoError(t, err)

	views, total, err := svc.List(ctx, survey.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, views, 1)
	assert.Equal(t, tokenModel.TokenStatusPending, views[0].Status)
	assert.Equal(t, a1.Email, views[0].AlumniEmail)

	clock.Advance(48 * time.Hour)
	views, _, err = svc.List(ctx, survey.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, tokenModel.TokenStatusExpired, views[0].Status)
}

func TestReasonForNeverLeaksInfrastructureErrors(t *testing.T) {
	t.Parallel()

	raw := errors.New("pq: connection refused 10.0.0.3")
	r := ReasonFor(Persistence("insert response", raw))
	assert.Equal(t, "PERSISTENCE_FAILURE", r.Code)
	assert.Equal(t, MsgPersistence, r.Message)
	assert.NotContains(t, r.Message, "10.0.0.3")

	r = ReasonFor(raw)
	assert.Equal(t, "INTERNAL_ERROR", r.Code)

	verr := &ValidationError{}
	verr.Add("q1", "wajib diisi")
	r = ReasonFor(verr)
	assert.Equal(t, "VALIDATION_FAILED", r.Code)
	assert.Equal(t, []string{"wajib diisi"}, r.Fields["q1"])

	assert.Equal(t, "TOKEN_ALREADY_USED", ReasonFor(ErrTokenAlreadyUsed).Code)
	assert.Equal(t, "TOKEN_EXPIRED", ReasonFor(ErrTokenExpired).Code)
	assert.Equal(t, "SURVEY_INACTIVE", ReasonFor(ErrSurveyInactive).Code)
	assert.Equal(t, "TOKEN_NOT_FOUND", ReasonFor(ErrTokenNotFound).Code)
}
