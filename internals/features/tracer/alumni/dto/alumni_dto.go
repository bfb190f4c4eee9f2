package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	alumniModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/model"
)

type AlumniRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=150"`
	Email          string `json:"email" validate:"required,email,max=150"`
	GraduationYear int    `json:"graduation_year" validate:"required,gte=1950,lte=2100"`
	Major          string `json:"major" validate:"required,max=150"`
}

func (r *AlumniRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Major = strings.TrimSpace(r.Major)
}

func (r AlumniRequest) ToModel() alumniModel.Alumni {
	return alumniModel.Alumni{
		Name:           r.Name,
		Email:          r.Email,
		GraduationYear: r.GraduationYear,
		Major:          r.Major,
	}
}

type ImportRequest struct {
	Alumni []AlumniRequest `json:"alumni"`
}

type ImportError struct {
	Row   int    `json:"row"`
	Email string `json:"email,omitempty"`
	Error string `json:"error"`
}

type ImportReport struct {
	Success int           `json:"success"`
	Failed  int           `json:"failed"`
	Errors  []ImportError `json:"errors"`
}

type AlumniResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	GraduationYear int       `json:"graduation_year"`
	Major          string    `json:"major"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToAlumniResponse(m alumniModel.Alumni) AlumniResponse {
	return AlumniResponse{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		GraduationYear: m.GraduationYear,
		Major:          m.Major,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToAlumniResponses(rows []alumniModel.Alumni) []AlumniResponse {
	out := make([]AlumniResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToAlumniResponse(r))
	}
	return out
}
