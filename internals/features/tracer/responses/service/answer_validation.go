package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	responseModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/model"
	surveyModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/model"
	tokenService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
)

const MaxTextAnswerLength = 5000

// NormalizeAnswers memeriksa jawaban terhadap pertanyaan survey dan
// mengembalikan daftar jawaban kanonik dalam urutan pertanyaan.
// Jawaban kosong untuk pertanyaan opsional dibuang.
func NormalizeAnswers(questions []surveyModel.Question, submitted []responseModel.Answer) ([]responseModel.Answer, error) {
	verr := &tokenService.ValidationError{}

	known := make(map[string]surveyModel.Question, len(questions))
	for _, q := range questions {
		known[q.ID] = q
	}

	given := make(map[string]responseModel.AnswerValue, len(submitted))
	for _, a := range submitted {
		id := strings.TrimSpace(a.QuestionID)
		if _, ok := known[id]; !ok {
			verr.Add(fieldOr(id), "pertanyaan tidak dikenal")
			continue
		}
		if _, dup := given[id]; dup {
			verr.Add(id, "jawaban ganda untuk pertanyaan yang sama")
			continue
		}
		given[id] = a.Value
	}

	out := make([]responseModel.Answer, 0, len(questions))
	for _, q := range questions {
		v, ok := given[q.ID]
		if !ok || v.IsBlank() {
			if q.Required {
				verr.Add(q.ID, "wajib diisi")
			}
			continue
		}
		canon, msg := coerce(q, v)
		if msg != "" {
			verr.Add(q.ID, msg)
			continue
		}
		out = append(out, responseModel.Answer{QuestionID: q.ID, Value: canon})
	}

	if !verr.Empty() {
		return nil, verr
	}
	return out, nil
}

// coerce menyesuaikan bentuk jawaban dengan tipe pertanyaan.
// Pesan kosong berarti jawaban valid.
func coerce(q surveyModel.Question, v responseModel.AnswerValue) (responseModel.AnswerValue, string) {
	switch q.Type {
	case surveyModel.QuestionShortText, surveyModel.QuestionLongText:
		if v.Kind != responseModel.AnswerText {
			return v, "harus berupa teks"
		}
		text := strings.TrimSpace(v.Text)
		if len([]rune(text)) > MaxTextAnswerLength {
			return v, fmt.Sprintf("maksimal %d karakter", MaxTextAnswerLength)
		}
		return responseModel.TextAnswer(text), ""

	case surveyModel.QuestionSingleChoice:
		var pick string
		switch {
		case v.Kind == responseModel.AnswerText:
			pick = v.Text
		case v.Kind == responseModel.AnswerChoices && len(v.Choices) == 1:
			pick = v.Choices[0]
		default:
			return v, "pilih tepat satu opsi"
		}
		opt, ok := matchOption(q.Options, pick)
		if !ok {
			return v, "pilihan tidak tersedia: " + pick
		}
		return responseModel.TextAnswer(opt), ""

	case surveyModel.QuestionMultipleChoice:
		var picks []string
		switch v.Kind {
		case responseModel.AnswerChoices:
			picks = v.Choices
		case responseModel.AnswerText:
			picks = []string{v.Text}
		default:
			return v, "harus berupa daftar pilihan"
		}
		seen := make(map[string]struct{}, len(picks))
		canon := make([]string, 0, len(picks))
		for _, p := range picks {
			opt, ok := matchOption(q.Options, p)
			if !ok {
				return v, "pilihan tidak tersedia: " + p
			}
			if _, dup := seen[opt]; dup {
				continue
			}
			seen[opt] = struct{}{}
			canon = append(canon, opt)
		}
		return responseModel.ChoicesAnswer(canon...), ""

	case surveyModel.QuestionRating:
		n, ok := ratingValue(v)
		if !ok || n < surveyModel.RatingMin || n > surveyModel.RatingMax {
			return v, fmt.Sprintf("rating harus bilangan bulat %d-%d", surveyModel.RatingMin, surveyModel.RatingMax)
		}
		return responseModel.NumberAnswer(float64(n)), ""
	}
	return v, "tipe pertanyaan tidak dikenal"
}

func ratingValue(v responseModel.AnswerValue) (int, bool) {
	switch v.Kind {
	case responseModel.AnswerNumber:
		if v.Number != math.Trunc(v.Number) {
			return 0, false
		}
		return int(v.Number), true
	case responseModel.AnswerText:
		n, err := strconv.Atoi(strings.TrimSpace(v.Text))
		return n, err == nil
	}
	return 0, false
}

// matchOption membandingkan setelah normalisasi NFC dan mengembalikan opsi apa adanya.
func matchOption(options []string, pick string) (string, bool) {
	want := helper.NormalizeText(pick)
	for _, o := range options {
		if helper.NormalizeText(o) == want {
			return o, true
		}
	}
	return "", false
}

func fieldOr(id string) string {
	if id == "" {
		return "_"
	}
	return id
}
