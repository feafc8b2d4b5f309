package updatecreate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/community-kitchen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
	services "github.com/magabrotheeeer/community-kitchen/internal/services/campaign"
	"github.com/magabrotheeeer/community-kitchen/internal/storage/repository"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) AddUpdate(ctx context.Context, userUID string, campaignID int, req models.DummyCampaignUpdate) (int, error) {
	args := m.Called(ctx, userUID, campaignID, req)
	return args.Int(0), args.Error(1)
}

func newRequest(body, uid string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "9")
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if uid != "" {
		ctx = context.WithValue(ctx, middlewarectx.UserUID, uid)
	}
	return r.WithContext(ctx)
}

func TestUpdateCreateHandler(t *testing.T) {
	const validBody = `{"title":"Thank you","content":"We reached half of the goal!"}`
	want := models.DummyCampaignUpdate{Title: "Thank you", Content: "We reached half of the goal!"}

	tests := []struct {
		name     string
		body     string
		uid      string
		mockID   int
		mockErr  error
		call     bool
		wantCode int
	}{
		{name: "owner publishes", body: validBody, uid: "owner", mockID: 3, call: true, wantCode: http.StatusCreated},
		{name: "not owner", body: validBody, uid: "stranger", mockErr: fmt.Errorf("x: %w", services.ErrForbidden), call: true, wantCode: http.StatusForbidden},
		{name: "missing campaign", body: validBody, uid: "owner", mockErr: repository.ErrCampaignNotFound, call: true, wantCode: http.StatusNotFound},
		{name: "storage failure", body: validBody, uid: "owner", mockErr: errors.New("boom"), call: true, wantCode: http.StatusInternalServerError},
		{name: "no user", body: validBody, wantCode: http.StatusUnauthorized},
		{name: "bad json", body: "{", uid: "owner", wantCode: http.StatusBadRequest},
		{name: "too short", body: `{"title":"Hi","content":"short"}`, uid: "owner", wantCode: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.call {
				svc.On("AddUpdate", mock.Anything, tt.uid, 9, want).Return(tt.mockID, tt.mockErr).Once()
			}
			rec := httptest.NewRecorder()
			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(rec, newRequest(tt.body, tt.uid))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusCreated {
				assert.Contains(t, rec.Body.String(), `"redirect":"/campaigns/9"`)
			}
			svc.AssertExpectations(t)
		})
	}
}
