package handler

import (
	"net/http"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// AuthRoutes is the /auth route table. rateLimit guards the credential endpoints.
func AuthRoutes(h *AuthHandler, accessGuard, rateLimit gin.HandlerFunc) RouteGroup {
	guarded := []gin.HandlerFunc{accessGuard}
	superAdmin := []domain.Role{domain.RoleSuperAdmin}

	return RouteGroup{
		Prefix: "/auth",
		Routes: []Route{
			{Method: http.MethodPost, Path: "/register", Middleware: []gin.HandlerFunc{rateLimit}, Handler: h.Register},
			{Method: http.MethodPost, Path: "/login", Middleware: []gin.HandlerFunc{rateLimit}, Handler: h.Login},
			{Method: http.MethodPost, Path: "/refresh", Handler: h.Refresh},
			{Method: http.MethodPost, Path: "/logout", Middleware: guarded, Handler: h.Logout},
			{Method: http.MethodGet, Path: "/profile", Middleware: guarded, Handler: h.GetProfile},
			{Method: http.MethodPatch, Path: "/profile", Middleware: guarded, Handler: h.UpdateProfile},
			{Method: http.MethodPatch, Path: "/admin/user/:id", Middleware: guarded, Roles: superAdmin, Handler: h.AdminUpdateUser},
			{Method: http.MethodGet, Path: "/admin/users", Middleware: guarded, Roles: superAdmin, Handler: h.AdminListUsers},
			{Method: http.MethodDelete, Path: "/admin/user/:id", Middleware: guarded, Roles: superAdmin, Handler: h.AdminDeleteUser},
		},
	}
}

// BrandRoutes is the /brand route table
func BrandRoutes(h *BrandHandler, accessGuard gin.HandlerFunc) RouteGroup {
	readers := []domain.Role{domain.RoleBrandOwner, domain.RoleSuperAdmin, domain.RoleShopOwner}

	return RouteGroup{
		Prefix:     "/brand",
		Middleware: []gin.HandlerFunc{accessGuard},
		Roles:      []domain.Role{domain.RoleBrandOwner},
		Routes: []Route{
			{Method: http.MethodPost, Path: "", Handler: h.Create},
			{Method: http.MethodGet, Path: "", Roles: readers, Handler: h.List},
			{Method: http.MethodGet, Path: "/:id", Roles: readers, Handler: h.Get},
			{Method: http.MethodPatch, Path: "/:id", Handler: h.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Delete},
		},
	}
}
