package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	responseModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/model"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/dto"
	surveyRepo "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/repository"
	tokenService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
	"github.com/firmantawakal/simak-tracer-study/internals/testutil"
)

func sampleRequest() dto.SurveyRequest {
	return dto.SurveyRequest{
		Title: "  Tracer Study 2024  ",
		Questions: []dto.QuestionInput{
			{ID: "status", Text: "Status pekerjaan", Type: "multiple_choice", Required: true, Options: []string{"Bekerja", "Belum bekerja"}},
			{Text: "Saran untuk kampus", Type: "textarea"},
		},
	}
}

func TestBuildQuestionsFillsMissingIDs(t *testing.T) {
	t.Parallel()
	req := sampleRequest()
	req.Normalize()

	qs, err := BuildQuestions(req.Questions)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "status", qs[0].ID)
	_, perr := uuid.Parse(qs[1].ID)
	assert.NoError(t, perr)
	assert.Nil(t, qs[1].Options)
}

func TestBuildQuestionsRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := BuildQuestions(nil)
	var qerr *QuestionError
	require.ErrorAs(t, err, &qerr)
	assert.Contains(t, qerr.Fields, "questions")

	_, err = BuildQuestions([]dto.QuestionInput{
		{ID: "a", Text: "Satu", Type: "rating"},
		{ID: "a", Text: "Dua", Type: "checkbox"},
		{ID: "c", Text: "Tiga", Type: "slider"},
	})
	require.ErrorAs(t, err, &qerr)
	assert.Contains(t, qerr.Fields, "questions.1.id")
	assert.Contains(t, qerr.Fields, "questions.1.options")
	assert.Contains(t, qerr.Fields, "questions.2.type")
}

func TestCreateListAndToggle(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	svc := New(db)
	ctx := context.Background()

	inactive := false
	req := sampleRequest()
	req.IsActive = &inactive
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Tracer Study 2024", created.Title)
	assert.False(t, created.IsActive)

	alumni := testutil.CreateAlumni(t, db, "Budi")
	tokens := tokenService.New(db, testutil.TestConfig())
	_, err = tokens.Generate(ctx, created.ID, []uuid.UUID{alumni.ID}, tokenService.GenerateOptions{})
	require.NoError(t, err)

	rows, total, err := svc.List(ctx, surveyRepo.ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 1, rows[0].TokenCount)
	assert.EqualValues(t, 0, rows[0].ResponseCount)

	toggled, err := svc.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	active := true
	rows, _, err = svc.List(ctx, surveyRepo.ListFilter{IsActive: &active, Search: "tracer", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestUpdateReplacesQuestions(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	svc := New(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleRequest())
	require.NoError(t, err)

	req := sampleRequest()
	req.Title = "Tracer Study 2025"
	req.Questions = req.Questions[:1]
	updated, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Tracer Study 2025", updated.Title)
	require.Len(t, updated.Questions, 1)
	assert.Equal(t, "status", updated.Questions[0].ID)

	_, err = svc.Update(ctx, uuid.New(), req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCascadesTokensAndResponses(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	svc := New(db)
	ctx := context.Background()

	survey := testutil.CreateSurvey(t, db, "Tracer", testutil.RatingQuestion("q1"))
	alumni := testutil.CreateAlumni(t, db, "Ani")
	tokens := tokenService.New(db, testutil.TestConfig())
	_, err := tokens.Generate(ctx, survey.ID, []uuid.UUID{alumni.ID}, tokenService.GenerateOptions{})
	require.NoError(t, err)
	require.NoError(t, db.Create(&responseModel.Response{
		SurveyID:    survey.ID,
		TokenHash:   "x",
		Answers:     datatypes.NewJSONType([]responseModel.Answer{}),
		SubmittedAt: time.Now().UTC(),
	}).Error)

	require.NoError(t, svc.Delete(ctx, survey.ID))

	var n int64
	require.NoError(t, db.Table("survey_tokens").Where("survey_id = ?", survey.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Table("responses").Where("survey_id = ?", survey.ID).Count(&n).Error)
	assert.Zero(t, n)

	assert.ErrorIs(t, svc.Delete(ctx, survey.ID), ErrNotFound)
}
