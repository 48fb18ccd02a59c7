// Package router mounts handler route registrations under a versioned
// API prefix.
package router

import "github.com/gin-gonic/gin"

// RouteRegistrar is implemented by handlers that attach their routes
// to a shared group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Mount attaches every registrar under /api/<version> on the engine.
func Mount(engine *gin.Engine, version string, registrars ...RouteRegistrar) {
	api := engine.Group("/api/" + version)
	for _, r := range registrars {
		r.RegisterRoutes(api)
	}
}
