package donate

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
	"github.com/magabrotheeeer/community-kitchen/internal/lib/fee"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
	"github.com/magabrotheeeer/community-kitchen/internal/storage/repository"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Donate(ctx context.Context, donorUID string, campaignID int, req models.DummyDonation) (*models.DonationResult, error) {
	args := m.Called(ctx, donorUID, campaignID, req)
	res, _ := args.Get(0).(*models.DonationResult)
	return res, args.Error(1)
}

func newRequest(body, campaignID, uid string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", campaignID)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if uid != "" {
		ctx = context.WithValue(ctx, middlewarectx.UserUID, uid)
	}
	return r.WithContext(ctx)
}

const validBody = `{"amount":"25","first_name":"Ann","last_name":"Lee","email":"ann@example.org"}`

func TestDonateHandler(t *testing.T) {
	wantReq := models.DummyDonation{Amount: "25", FirstName: "Ann", LastName: "Lee", Email: "ann@example.org"}
	result := &models.DonationResult{DonationID: 11, Amount: 25, Fee: 1.03, Total: 26.03, CoverFees: true,
		ThankYouPath: "/campaigns/5/thank-you?donation=11"}

	tests := []struct {
		name     string
		body     string
		id       string
		uid      string
		mockRes  *models.DonationResult
		mockErr  error
		call     bool
		wantCode int
		wantBody string
	}{
		{name: "anonymous visitor", body: validBody, id: "5", mockRes: result, call: true,
			wantCode: http.StatusCreated, wantBody: `"thank_you_path":"/campaigns/5/thank-you?donation=11"`},
		{name: "signed-in donor", body: validBody, id: "5", uid: "uid-7", mockRes: result, call: true,
			wantCode: http.StatusCreated, wantBody: `"total":26.03`},
		{name: "bad amount", body: validBody, id: "5", mockErr: fmt.Errorf("d: %w", fee.ErrInvalidAmount), call: true,
			wantCode: http.StatusUnprocessableEntity, wantBody: "amount must be a positive number"},
		{name: "campaign missing", body: validBody, id: "5", mockErr: repository.ErrCampaignNotFound, call: true,
			wantCode: http.StatusNotFound},
		{name: "campaign ended", body: validBody, id: "5", mockErr: fmt.Errorf("d: %w", repository.ErrCampaignClosed), call: true,
			wantCode: http.StatusConflict},
		{name: "storage error", body: validBody, id: "5", mockErr: errors.New("boom"), call: true,
			wantCode: http.StatusInternalServerError},
		{name: "bad id", body: validBody, id: "five", wantCode: http.StatusBadRequest},
		{name: "bad json", body: "{", id: "5", wantCode: http.StatusBadRequest},
		{name: "invalid email", body: `{"amount":"25","first_name":"Ann","last_name":"Lee","email":"ann"}`, id: "5",
			wantCode: http.StatusUnprocessableEntity, wantBody: "field email must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.call {
				svc.On("Donate", mock.Anything, tt.uid, 5, wantReq).Return(tt.mockRes, tt.mockErr).Once()
			}
			rec := httptest.NewRecorder()
			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(rec, newRequest(tt.body, tt.id, tt.uid))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			svc.AssertExpectations(t)
		})
	}
}
