package donors

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/community-kitchen/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Donors(ctx context.Context, campaignID int) ([]models.Donor, error) {
	args := m.Called(ctx, campaignID)
	res, _ := args.Get(0).([]models.Donor)
	return res, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func request(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestDonorsHandler(t *testing.T) {
	t.Run("empty list is an empty array", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Donors", mock.Anything, 3).Return(nil, nil).Once()
		rec := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(rec, request("3"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"donors":[]`)
	})

	t.Run("anonymous donor", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Donors", mock.Anything, 3).Return([]models.Donor{{ID: 1, Name: "Anonymous", Amount: 25}}, nil).Once()
		rec := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(rec, request("3"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"Anonymous"`)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		New(newNoopLogger(), new(MockService)).ServeHTTP(rec, request("x"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Donors", mock.Anything, 3).Return(nil, errors.New("boom")).Once()
		rec := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(rec, request("3"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
