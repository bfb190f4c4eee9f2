package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	authHelper "github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/helper"
	authRepo "github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/repository"
)

// ========================== CHANGE PASSWORD ==========================
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	admin, err := s.Profile(ctx, id)
	if err != nil {
		return err
	}
	if err := authHelper.CheckPasswordHash(admin.Password, current); err != nil {
		return ErrWrongPassword
	}
	hashed, err := authHelper.HashPassword(next)
	if err != nil {
		return err
	}
	if err := authRepo.UpdateAdminPassword(s.db.WithContext(ctx), id, hashed); err != nil {
		return err
	}
	log.Printf("[AUTH] password admin=%s diperbarui", admin.Username)
	return nil
}
