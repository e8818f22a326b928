package handler

import (
	"net/http"
	"slices"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
	"github.com/ajaymaurya90/ecompointer-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// Route pairs a handler with the roles allowed to call it. Roles declared on a
// route replace the roles of its group.
type Route struct {
	Method     string
	Path       string
	Middleware []gin.HandlerFunc
	Roles      []domain.Role
	Handler    gin.HandlerFunc
}

// RouteGroup is a set of routes sharing a prefix, middleware and default roles
type RouteGroup struct {
	Prefix     string
	Middleware []gin.HandlerFunc
	Roles      []domain.Role
	Routes     []Route
}

// Register mounts the group on router
func (g RouteGroup) Register(router gin.IRouter) {
	group := router.Group(g.Prefix, g.Middleware...)

	for _, route := range g.Routes {
		handlers := slices.Clone(route.Middleware)
		if roles := g.rolesFor(route); len(roles) > 0 {
			handlers = append(handlers, RoleGuard(roles...))
		}
		handlers = append(handlers, route.Handler)

		group.Handle(route.Method, route.Path, handlers...)
	}
}

func (g RouteGroup) rolesFor(route Route) []domain.Role {
	if len(route.Roles) > 0 {
		return route.Roles
	}
	return g.Roles
}

// RoleGuard allows the request only when the identity attached by AccessGuard
// holds one of the allowed roles. With no roles it allows everything.
func RoleGuard(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(allowed) == 0 {
			c.Next()
			return
		}

		identity, ok := IdentityFrom(c)
		if !ok || !identity.Is(allowed...) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Error:   "Forbidden",
				Message: "You do not have permission to access this resource",
			})
			return
		}

		c.Next()
	}
}
