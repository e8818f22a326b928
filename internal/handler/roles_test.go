package handler

import (
	"net/http"
	"testing"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func okHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

func TestRouteGroup_RoleResolution(t *testing.T) {
	issuer := newTestIssuer()
	router := gin.New()

	RouteGroup{
		Prefix:     "/things",
		Middleware: []gin.HandlerFunc{AccessGuard(issuer)},
		Roles:      []domain.Role{domain.RoleBrandOwner},
		Routes: []Route{
			{Method: http.MethodGet, Path: "", Handler: okHandler},
			{Method: http.MethodDelete, Path: "/:id", Roles: []domain.Role{domain.RoleSuperAdmin}, Handler: okHandler},
		},
	}.Register(router)

	RouteGroup{
		Prefix:     "/open",
		Middleware: []gin.HandlerFunc{AccessGuard(issuer)},
		Routes:     []Route{{Method: http.MethodGet, Path: "", Handler: okHandler}},
	}.Register(router)

	owner := accessToken(t, issuer, "bo", domain.RoleBrandOwner)
	admin := accessToken(t, issuer, "root", domain.RoleSuperAdmin)
	endUser := accessToken(t, issuer, "eu", domain.RoleEndUser)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{name: "group role allowed", method: http.MethodGet, path: "/things", token: owner, want: http.StatusOK},
		{name: "group role denied", method: http.MethodGet, path: "/things", token: admin, want: http.StatusForbidden},
		{name: "route role overrides group", method: http.MethodDelete, path: "/things/1", token: owner, want: http.StatusForbidden},
		{name: "route role allowed", method: http.MethodDelete, path: "/things/1", token: admin, want: http.StatusOK},
		{name: "no roles declared", method: http.MethodGet, path: "/open", token: endUser, want: http.StatusOK},
		{name: "guard runs before roles", method: http.MethodGet, path: "/things", token: "bogus", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.path, nil, withBearer(tt.token))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRoleGuard_WithoutIdentity(t *testing.T) {
	router := gin.New()
	router.GET("/admin", RoleGuard(domain.RoleSuperAdmin), okHandler)
	router.GET("/any", RoleGuard(), okHandler)

	assert.Equal(t, http.StatusForbidden, doRequest(router, http.MethodGet, "/admin", nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/any", nil).Code)
}
