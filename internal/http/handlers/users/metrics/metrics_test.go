package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/daily-diet/internal/lib/sl"
	"github.com/magabrotheeeer/daily-diet/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ForUser(ctx context.Context, userID string) (models.Metrics, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.Metrics), args.Error(1)
}

func TestMetricsHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(m *ServiceMock)
		wantStatus int
		wantBody   string
	}{
		{
			name: "metrics for path user",
			setupMock: func(m *ServiceMock) {
				m.On("ForUser", mock.Anything, "u1").Return(models.Metrics{
					TotalNumberOfMeals:        3,
					TotalNumberOfMealsOnDiet:  2,
					TotalNumberOfMealsOffDiet: 1,
					BestSequenceOfMealsOnDiet: 2,
				}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody: `{"totalNumberOfMeals":3,"totalNumberOfMealsOnDiet":2,` +
				`"totalNumberOfMealsOffDiet":1,"bestSequenceOfMealsOnDiet":2}`,
		},
		{
			name: "no meals",
			setupMock: func(m *ServiceMock) {
				m.On("ForUser", mock.Anything, "u1").Return(models.Metrics{}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody: `{"totalNumberOfMeals":0,"totalNumberOfMealsOnDiet":0,` +
				`"totalNumberOfMealsOffDiet":0,"bestSequenceOfMealsOnDiet":0}`,
		},
		{
			name: "service error",
			setupMock: func(m *ServiceMock) {
				m.On("ForUser", mock.Anything, "u1").Return(models.Metrics{}, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMock(svc)
			h := New(sl.Discard(), svc)

			req := httptest.NewRequest(http.MethodGet, "/users/u1/metrics", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "u1")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
