// Package api implements the gateway client for the MediMinder REST
// backend: auth calls, medicine CRUD, and the uniform response-decoding
// contract shared by every endpoint.
package api

import (
	"context"

	"github.com/mediminder/mediminder/internal/models"
)

// Client defines the remote operations the application needs.
//
// Contract:
//   - Auth calls (Register, Login, RequestPasswordReset) carry no
//     Authorization header; medicine calls carry "Bearer <token>".
//   - Every call issues exactly one HTTP request; no retries.
//   - Server-reported failures come back as *Error; transport failures
//     wrap ErrUnavailable.
//
// All methods honor context cancellation/timeouts.
type Client interface {
	Register(ctx context.Context, username, password, email, phone string) (*models.AuthResponse, error)
	Login(ctx context.Context, identifier, password string) (*models.AuthResponse, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ListMedicines(ctx context.Context) ([]models.Medicine, error)
	AddMedicine(ctx context.Context, fields models.MedicineFields) (*models.Medicine, error)
	UpdateMedicine(ctx context.Context, id string, fields models.MedicineFields) (*models.Medicine, error)
	DeleteMedicine(ctx context.Context, id string) error
	SetToken(token string)
}
