package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
	"github.com/ajaymaurya90/ecompointer-backend/internal/dto"
	"github.com/ajaymaurya90/ecompointer-backend/internal/service"
	"github.com/ajaymaurya90/ecompointer-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestIssuer() *utils.TokenIssuer {
	return utils.NewTokenIssuer(
		"access-secret-for-handler-tests-0123456789",
		"refresh-secret-for-handler-tests-0123456789",
		15*time.Minute,
		7*24*time.Hour,
	)
}

func accessToken(t *testing.T, issuer *utils.TokenIssuer, id string, role domain.Role) string {
	t.Helper()

	token, err := issuer.IssueAccessToken(&domain.User{ID: id, Role: role})
	require.NoError(t, err)
	return token
}

func doRequest(router http.Handler, method, path string, body any, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, m := range mutate {
		m(req)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func withBearer(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

type mockAuthService struct {
	mock.Mock
}

var _ service.AuthService = (*mockAuthService)(nil)

func (m *mockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.RegisterResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*service.AuthResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*service.AuthResult)
	return result, args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*service.AuthResult, error) {
	args := m.Called(ctx, refreshToken)
	result, _ := args.Get(0).(*service.AuthResult)
	return result, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockAuthService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*dto.ProfileResponse)
	return profile, args.Error(1)
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, actor domain.Identity, targetID string, update domain.ProfileUpdate) error {
	return m.Called(ctx, actor, targetID, update).Error(0)
}

func (m *mockAuthService) ListUsers(ctx context.Context, page, limit int) (*dto.UserListResponse, error) {
	args := m.Called(ctx, page, limit)
	users, _ := args.Get(0).(*dto.UserListResponse)
	return users, args.Error(1)
}

func (m *mockAuthService) DeleteUser(ctx context.Context, actor domain.Identity, targetID string) error {
	return m.Called(ctx, actor, targetID).Error(0)
}

type mockBrandService struct {
	mock.Mock
}

var _ service.BrandService = (*mockBrandService)(nil)

func (m *mockBrandService) Create(ctx context.Context, actor domain.Identity, req *dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	args := m.Called(ctx, actor, req)
	brand, _ := args.Get(0).(*dto.BrandResponse)
	return brand, args.Error(1)
}

func (m *mockBrandService) List(ctx context.Context, actor domain.Identity) ([]dto.BrandResponse, error) {
	args := m.Called(ctx, actor)
	brands, _ := args.Get(0).([]dto.BrandResponse)
	return brands, args.Error(1)
}

func (m *mockBrandService) Get(ctx context.Context, actor domain.Identity, id string) (*dto.BrandResponse, error) {
	args := m.Called(ctx, actor, id)
	brand, _ := args.Get(0).(*dto.BrandResponse)
	return brand, args.Error(1)
}

func (m *mockBrandService) Update(ctx context.Context, actor domain.Identity, id string, update domain.BrandUpdate) (*dto.BrandResponse, error) {
	args := m.Called(ctx, actor, id, update)
	brand, _ := args.Get(0).(*dto.BrandResponse)
	return brand, args.Error(1)
}

func (m *mockBrandService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func conflictErr() error {
	return service.NewError(service.ErrConflict, "email already exists")
}

func unauthorizedErr() error {
	return service.NewError(service.ErrUnauthorized, "invalid refresh token")
}

func notFoundErr() error {
	return service.NewError(service.ErrNotFound, "user not found")
}
