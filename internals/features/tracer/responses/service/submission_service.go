package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	responseModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/model"
	tokenRepo "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/repository"
	tokenService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
)

type SubmissionService struct {
	tokens *tokenService.Service
}

func NewSubmissionService(tokens *tokenService.Service) *SubmissionService {
	return &SubmissionService{tokens: tokens}
}

// Submit memeriksa ulang token lalu menandai token terpakai dan menyimpan
// jawaban dalam satu transaksi. Bila salah satu gagal, tidak ada yang tersimpan.
func (s *SubmissionService) Submit(ctx context.Context, plaintext string, answers []responseModel.Answer) error {
	now := s.tokens.Now()

	err := s.tokens.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lk, err := tokenService.Inspect(tx, plaintext, now, true)
		if err != nil {
			return err
		}

		normalized, err := NormalizeAnswers(lk.Survey.QuestionList(), answers)
		if err != nil {
			return err
		}

		if err := tokenRepo.MarkUsed(tx, lk.Hash, now); err != nil {
			if errors.Is(err, tokenRepo.ErrAlreadyConsumed) {
				return tokenService.ErrTokenAlreadyUsed
			}
			return tokenService.Persistence("mark token used", err)
		}

		resp := responseModel.Response{
			SurveyID:    lk.Survey.ID,
			TokenHash:   lk.Hash,
			Answers:     datatypes.NewJSONType(normalized),
			SubmittedAt: now,
		}
		if err := tx.Create(&resp).Error; err != nil {
			return tokenService.Persistence("insert response", err)
		}

		log.Printf("[RESPONSE] survey=%s response=%s tersimpan", resp.SurveyID, resp.ID)
		return nil
	})
	if err != nil && !isDomainError(err) {
		// gagal begin/commit
		return tokenService.Persistence("commit submission", err)
	}
	return err
}

func isDomainError(err error) bool {
	var verr *tokenService.ValidationError
	return errors.Is(err, tokenService.ErrTokenNotFound) ||
		errors.Is(err, tokenService.ErrTokenAlreadyUsed) ||
		errors.Is(err, tokenService.ErrTokenExpired) ||
		errors.Is(err, tokenService.ErrSurveyInactive) ||
		errors.Is(err, tokenService.ErrPersistence) ||
		errors.As(err, &verr)
}
