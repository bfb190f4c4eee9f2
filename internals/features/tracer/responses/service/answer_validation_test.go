package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	responseModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/model"
	surveyModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/model"
	tokenService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
)

func sampleQuestions() []surveyModel.Question {
	return []surveyModel.Question{
		{ID: "nama", Text: "Nama perusahaan", Type: surveyModel.QuestionShortText},
		{ID: "status", Text: "Status", Type: surveyModel.QuestionSingleChoice, Required: true, Options: []string{"Bekerja", "Wirausaha", "Studi lanjut"}},
		{ID: "skill", Text: "Kompetensi", Type: surveyModel.QuestionMultipleChoice, Options: []string{"Komunikasi", "Teknis", "Kepemimpinan"}},
		{ID: "puas", Text: "Kepuasan", Type: surveyModel.QuestionRating, Required: true},
		{ID: "saran", Text: "Saran", Type: surveyModel.QuestionLongText},
	}
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *tokenService.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr.Fields
}

func TestNormalizeAnswersOrdersByQuestionAndDropsBlankOptional(t *testing.T) {
	t.Parallel()

	out, err := NormalizeAnswers(sampleQuestions(), []responseModel.Answer{
		{QuestionID: "puas", Value: responseModel.NumberAnswer(4)},
		{QuestionID: "saran", Value: responseModel.TextAnswer("   ")},
		{QuestionID: "status", Value: responseModel.TextAnswer("Bekerja")},
		{QuestionID: "skill", Value: responseModel.ChoicesAnswer("Teknis", "Komunikasi", "Teknis")},
	})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "status", out[0].QuestionID)
	assert.Equal(t, "skill", out[1].QuestionID)
	assert.Equal(t, []string{"Teknis", "Komunikasi"}, out[1].Value.Choices)
	assert.Equal(t, "puas", out[2].QuestionID)
	assert.Equal(t, responseModel.AnswerNumber, out[2].Value.Kind)
}

func TestNormalizeAnswersReportsEveryFieldProblem(t *testing.T) {
	t.Parallel()

	_, err := NormalizeAnswers(sampleQuestions(), []responseModel.Answer{
		{QuestionID: "status", Value: responseModel.TextAnswer("Pengangguran")},
		{QuestionID: "skill", Value: responseModel.NumberAnswer(2)},
		{QuestionID: "puas", Value: responseModel.NumberAnswer(6)},
		{QuestionID: "nama", Value: responseModel.ChoicesAnswer("x")},
		{QuestionID: "tidak-ada", Value: responseModel.TextAnswer("?")},
	})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "skill")
	assert.Contains(t, fields, "puas")
	assert.Contains(t, fields, "nama")
	assert.Contains(t, fields, "tidak-ada")
	assert.NotContains(t, fields, "saran")
}

func TestNormalizeAnswersRequired(t *testing.T) {
	t.Parallel()

	_, err := NormalizeAnswers(sampleQuestions(), nil)
	fields := fieldErrors(t, err)
	assert.Equal(t, []string{"wajib diisi"}, fields["status"])
	assert.Equal(t, []string{"wajib diisi"}, fields["puas"])
	assert.Len(t, fields, 2)
}

func TestNormalizeAnswersDuplicateQuestion(t *testing.T) {
	t.Parallel()

	_, err := NormalizeAnswers(sampleQuestions(), []responseModel.Answer{
		{QuestionID: "status", Value: responseModel.TextAnswer("Bekerja")},
		{QuestionID: "status", Value: responseModel.TextAnswer("Wirausaha")},
		{QuestionID: "puas", Value: responseModel.NumberAnswer(3)},
	})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "status")
}

func TestNormalizeAnswersRatingCoercion(t *testing.T) {
	t.Parallel()

	qs := []surveyModel.Question{{ID: "r", Type: surveyModel.QuestionRating, Required: true}}

	out, err := NormalizeAnswers(qs, []responseModel.Answer{{QuestionID: "r", Value: responseModel.TextAnswer("5")}})
	require.NoError(t, err)
	assert.Equal(t, 5.0, out[0].Value.Number)

	_, err = NormalizeAnswers(qs, []responseModel.Answer{{QuestionID: "r", Value: responseModel.NumberAnswer(3.5)}})
	assert.Contains(t, fieldErrors(t, err), "r")

	_, err = NormalizeAnswers(qs, []responseModel.Answer{{QuestionID: "r", Value: responseModel.NumberAnswer(0)}})
	assert.Contains(t, fieldErrors(t, err), "r")
}

func TestNormalizeAnswersChoiceMatchesUnicodeForms(t *testing.T) {
	t.Parallel()

	qs := []surveyModel.Question{{ID: "c", Type: surveyModel.QuestionSingleChoice, Options: []string{"Café"}}}
	out, err := NormalizeAnswers(qs, []responseModel.Answer{{QuestionID: "c", Value: responseModel.TextAnswer("Café")}})
	require.NoError(t, err)
	assert.Equal(t, "Café", out[0].Value.Text)
}
