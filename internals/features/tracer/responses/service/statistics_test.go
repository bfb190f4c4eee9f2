package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	responseModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/model"
	surveyModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/model"
)

func responsesOf(answerSets ...[]responseModel.Answer) []responseModel.Response {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]responseModel.Response, 0, len(answerSets))
	for i, set := range answerSets {
		out = append(out, responseModel.Response{
			Answers:     datatypes.NewJSONType(set),
			SubmittedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return out
}

func rating(id string, n float64) []responseModel.Answer {
	return []responseModel.Answer{{QuestionID: id, Value: responseModel.NumberAnswer(n)}}
}

func TestAggregateRatingAverage(t *testing.T) {
	t.Parallel()

	qs := []surveyModel.Question{{ID: "r", Text: "Kepuasan", Type: surveyModel.QuestionRating}}
	stats := Aggregate(qs, responsesOf(rating("r", 4), rating("r", 5), rating("r", 3)), 3)

	require.Len(t, stats.Questions, 1)
	q := stats.Questions[0]
	require.NotNil(t, q.Average)
	assert.Equal(t, 4.0, *q.Average)
	assert.Equal(t, 3, q.ResponseCount)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 1, 5: 1}, q.Distribution)
}

func TestAggregateRatingRoundsToTwoDecimals(t *testing.T) {
	t.Parallel()

	qs := []surveyModel.Question{{ID: "r", Type: surveyModel.QuestionRating}}
	stats := Aggregate(qs, responsesOf(rating("r", 4), rating("r", 4), rating("r", 5)), 0)
	assert.Equal(t, 4.33, *stats.Questions[0].Average)
}

func TestAggregateRatingWithoutAnswersIsZero(t *testing.T) {
	t.Parallel()

	qs := []surveyModel.Question{{ID: "r", Type: surveyModel.QuestionRating}}
	stats := Aggregate(qs, nil, 0)

	q := stats.Questions[0]
	require.NotNil(t, q.Average)
	assert.Equal(t, 0.0, *q.Average)
	assert.Equal(t, 0.0, stats.ResponseRate, "no tokens means 0%")
}

func TestAggregateChoiceListsZeroOptions(t *testing.T) {
	t.Parallel()

	qs := []surveyModel.Question{{ID: "c", Type: surveyModel.QuestionSingleChoice, Options: []string{"A", "B"}}}
	one := []responseModel.Answer{{QuestionID: "c", Value: responseModel.TextAnswer("A")}}
	stats := Aggregate(qs, responsesOf(one, one), 2)

	opts := stats.Questions[0].Options
	require.Len(t, opts, 2)
	assert.Equal(t, OptionStat{Option: "A", Count: 2, Percentage: 100}, opts[0])
	assert.Equal(t, OptionStat{Option: "B", Count: 0, Percentage: 0}, opts[1])
	assert.Equal(t, 100.0, stats.ResponseRate)
}

func TestAggregateChoicePercentageOverRespondentsOfQuestion(t *testing.T) {
	t.Parallel()

	qs := []surveyModel.Question{
		{ID: "c", Type: surveyModel.QuestionMultipleChoice, Options: []string{"X", "Y", "Z"}},
		{ID: "r", Type: surveyModel.QuestionRating},
	}
	stats := Aggregate(qs, responsesOf(
		[]responseModel.Answer{{QuestionID: "c", Value: responseModel.ChoicesAnswer("X", "Y")}},
		[]responseModel.Answer{{QuestionID: "c", Value: responseModel.ChoicesAnswer("X", "tidak-terdaftar")}},
		rating("r", 5),
		rating("r", 1),
	), 8)

	c := stats.Questions[0]
	assert.Equal(t, 2, c.ResponseCount)
	assert.Equal(t, OptionStat{Option: "X", Count: 2, Percentage: 100}, c.Options[0])
	assert.Equal(t, OptionStat{Option: "Y", Count: 1, Percentage: 50}, c.Options[1])
	assert.Equal(t, OptionStat{Option: "Z", Count: 0, Percentage: 0}, c.Options[2])

	assert.Equal(t, 4, stats.TotalResponses)
	assert.Equal(t, 50.0, stats.ResponseRate)
}

func TestAggregateTextKeepsFirstTen(t *testing.T) {
	t.Parallel()

	qs := []surveyModel.Question{{ID: "t", Type: surveyModel.QuestionLongText}}
	var sets [][]responseModel.Answer
	for i := 0; i < 15; i++ {
		sets = append(sets, []responseModel.Answer{{QuestionID: "t", Value: responseModel.TextAnswer(strings.Repeat("a", i+1))}})
	}
	stats := Aggregate(qs, responsesOf(sets...), 15)

	q := stats.Questions[0]
	assert.Equal(t, 15, q.ResponseCount)
	require.Len(t, q.Answers, MaxTextSamples)
	assert.Equal(t, "a", q.Answers[0])
	assert.Equal(t, strings.Repeat("a", 10), q.Answers[9])
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	qs := []surveyModel.Question{
		{ID: "c", Text: "Kompetensi", Type: surveyModel.QuestionMultipleChoice, Options: []string{"A", "B"}},
		{ID: "t", Text: "Saran, kritik", Type: surveyModel.QuestionLongText},
		{ID: "r", Text: "Rating", Type: surveyModel.QuestionRating},
	}
	rs := responsesOf([]responseModel.Answer{
		{QuestionID: "c", Value: responseModel.ChoicesAnswer("A", "B")},
		{QuestionID: "t", Value: responseModel.TextAnswer(`kata "bagus"`)},
		{QuestionID: "r", Value: responseModel.NumberAnswer(5)},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, qs, rs, time.UTC))

	out := strings.TrimPrefix(buf.String(), utf8BOM)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `Tanggal Submit,Kompetensi,"Saran, kritik",Rating`, lines[0])
	assert.Equal(t, `01/01/2025 00.00.00,A; B,"kata ""bagus""",5`, lines[1])
}

func TestExportFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Tracer_Study_2024_responses.csv", ExportFilename("Tracer Study 2024"))
}
