package read

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/community-kitchen/internal/models"
	"github.com/magabrotheeeer/community-kitchen/internal/storage/repository"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, id int) (*models.Campaign, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*models.Campaign)
	return res, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestReadHandler(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		mockResp *models.Campaign
		mockErr  error
		call     bool
		wantCode int
	}{
		{name: "found", id: "7", mockResp: &models.Campaign{ID: 7, Title: "Pantry"}, call: true, wantCode: http.StatusOK},
		{name: "bad id", id: "abc", wantCode: http.StatusBadRequest},
		{name: "not found", id: "7", mockErr: fmt.Errorf("get: %w", repository.ErrCampaignNotFound), call: true, wantCode: http.StatusNotFound},
		{name: "storage error", id: "7", mockErr: errors.New("boom"), call: true, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.call {
				svc.On("Get", mock.Anything, 7).Return(tt.mockResp, tt.mockErr).Once()
			}
			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(rec, withID(httptest.NewRequest(http.MethodGet, "/", nil), tt.id))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				var resp struct {
					Data struct {
						Campaign models.Campaign `json:"campaign"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "Pantry", resp.Data.Campaign.Title)
			}
			svc.AssertExpectations(t)
		})
	}
}
