package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	userserrors "smarthost/internal/users/errors"
	"smarthost/pkg/config"
	apperrors "smarthost/pkg/errors"
	"smarthost/pkg/logger"
	"smarthost/pkg/model"
)

type mockUserRepository struct {
	countFunc    func(ctx context.Context) (int64, error)
	findByIDFunc func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindSummaries(ctx context.Context, ids []string) (map[string]*model.UserSummary, error) {
	return map[string]*model.UserSummary{}, nil
}

func TestCount_PassesStoreErrorThrough(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewUserService(&mockUserRepository{
		countFunc: func(context.Context) (int64, error) { return 0, storeErr },
	}, &config.Config{Log: logger.Discard()})

	if _, err := svc.Count(context.Background()); !errors.Is(err, storeErr) {
		t.Errorf("Count() error = %v, want %v", err, storeErr)
	}
}

func TestGetByID(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		repoErr    error
		wantStatus int
	}{
		{name: "found", id: "507f1f77bcf86cd799439011"},
		{name: "empty id", id: "", wantStatus: http.StatusBadRequest},
		{name: "invalid id", id: "nope", repoErr: userserrors.ErrInvalidID, wantStatus: http.StatusBadRequest},
		{name: "not found", id: "507f1f77bcf86cd799439011", repoErr: userserrors.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "store failure", id: "507f1f77bcf86cd799439011", repoErr: errors.New("down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(&mockUserRepository{
				findByIDFunc: func(_ context.Context, id string) (*model.User, error) {
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					return &model.User{ID: id, Name: "Host", Role: config.RoleHost}, nil
				},
			}, &config.Config{Log: logger.Discard()})

			user, err := svc.GetByID(context.Background(), tt.id)
			if tt.wantStatus != 0 {
				if got := apperrors.AsAppError(err).StatusCode(); err == nil || got != tt.wantStatus {
					t.Errorf("GetByID() error = %v, want status %d", err, tt.wantStatus)
				}
				return
			}
			if err != nil || user.ID != tt.id {
				t.Errorf("GetByID() = %+v, %v", user, err)
			}
		})
	}
}
