package service

import (
	"context"
	"time"

	"github.com/99minutos/user-service/internal/core/ports"
)

// StoreLoginRecorder writes last-login timestamps straight to the credential store.
type StoreLoginRecorder struct {
	repo ports.UserRepository
}

func NewStoreLoginRecorder(repo ports.UserRepository) *StoreLoginRecorder {
	return &StoreLoginRecorder{repo: repo}
}

func (r *StoreLoginRecorder) RecordLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := r.repo.Update(ctx, userID, ports.UserPatch{LastLogin: &at})
	return err
}
