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
	"github.com/firmantawakal/simak-tracer-study/internals/testutil"
)

func TestSummaryCountsAndRecent(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	testutil.CreateAlumni(t, db, "Oki")
	testutil.CreateAlumni(t, db, "Putu")
	open := testutil.CreateSurvey(t, db, "Tracer Terbuka", testutil.RatingQuestion("q1"))
	closed := testutil.CreateSurvey(t, db, "Tracer Tutup", testutil.RatingQuestion("q1"))
	testutil.SetSurveyActive(t, db, &closed, false)

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		require.NoError(t, db.Create(&responseModel.Response{
			ID:          uuid.New(),
			SurveyID:    open.ID,
			TokenHash:   "h",
			Answers:     datatypes.NewJSONType([]responseModel.Answer{}),
			SubmittedAt: base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	res, err := New(db).Summary(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Alumni)
	assert.EqualValues(t, 2, res.Surveys)
	assert.EqualValues(t, 1, res.ActiveSurveys)
	assert.EqualValues(t, 7, res.Responses)
	assert.Zero(t, res.ResponseRate)

	require.Len(t, res.RecentResponses, RecentLimit)
	assert.Equal(t, "Tracer Terbuka", res.RecentResponses[0].SurveyTitle)
	assert.True(t, res.RecentResponses[0].SubmittedAt.After(res.RecentResponses[1].SubmittedAt))
}
