package update

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/daily-diet/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-diet/internal/lib/sl"
	"github.com/magabrotheeeer/daily-diet/internal/models"
	"github.com/magabrotheeeer/daily-diet/internal/services/users"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Update(ctx context.Context, id, ownerID string, patch models.MealPatch) error {
	return m.Called(ctx, id, ownerID, patch).Error(0)
}

type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRequest_Patch(t *testing.T) {
	at := "2024-02-02"
	onDiet := true
	patch := Request{MadeAt: &at, IsOnDietPlan: &onDiet}.Patch()

	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.Description)
	assert.Equal(t, &at, patch.RegisteredAt)
	assert.Equal(t, &onDiet, patch.IsOnTheDietPlan)
	assert.True(t, Request{}.Patch().Empty())
}

func TestUpdateHandler_ServeHTTP(t *testing.T) {
	caller := &models.User{ID: "u1"}
	isFinalPatch := func(p models.MealPatch) bool {
		return p.Name != nil && *p.Name == "Soup" &&
			p.IsOnTheDietPlan != nil && !*p.IsOnTheDietPlan &&
			p.Description == nil && p.RegisteredAt == nil
	}

	tests := []struct {
		name       string
		body       string
		setupMocks func(s *ServiceMock, r *ResolverMock)
		wantStatus int
		wantBody   string
	}{
		{
			name: "partial update",
			body: `{"name":"Soup","isOnDietPlan":false}`,
			setupMocks: func(s *ServiceMock, r *ResolverMock) {
				r.On("ResolveSession", mock.Anything, "tok").Return(caller, nil).Once()
				s.On("Update", mock.Anything, "m1", "u1", mock.MatchedBy(isFinalPatch)).Return(nil).Once()
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "empty body subset",
			body: `{}`,
			setupMocks: func(s *ServiceMock, r *ResolverMock) {
				r.On("ResolveSession", mock.Anything, "tok").Return(caller, nil).Once()
				s.On("Update", mock.Anything, "m1", "u1", models.MealPatch{}).Return(nil).Once()
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "wrong field type",
			body:       `{"name":1}`,
			setupMocks: func(*ServiceMock, *ResolverMock) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Data validation error","issues":{"name":["Expected string, received number"]}}`,
		},
		{
			name: "session not resolved",
			body: `{"name":"Soup"}`,
			setupMocks: func(_ *ServiceMock, r *ResolverMock) {
				r.On("ResolveSession", mock.Anything, "tok").Return(nil, users.ErrSessionNotFound).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "service error",
			body: `{"name":"Soup"}`,
			setupMocks: func(s *ServiceMock, r *ResolverMock) {
				r.On("ResolveSession", mock.Anything, "tok").Return(caller, nil).Once()
				s.On("Update", mock.Anything, "m1", "u1", mock.Anything).Return(errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			resolver := new(ResolverMock)
			tt.setupMocks(svc, resolver)
			h := New(sl.Discard(), svc, resolver)

			req := httptest.NewRequest(http.MethodPut, "/meals/m1", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "m1")
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(middlewarectx.WithSession(ctx, "tok"))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			} else {
				assert.Empty(t, rec.Body.String())
			}
			svc.AssertExpectations(t)
			resolver.AssertExpectations(t)
		})
	}
}
