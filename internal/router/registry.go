package router

import "github.com/gin-gonic/gin"

// Registry collects modules mounted under /api and modules mounted at the
// engine root (health, welcome).
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
	root        []Module
	noRoute     gin.HandlerFunc
}

func NewRegistry(engine *gin.Engine) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// AddRoot registers mod on the engine root instead of /api.
func (r *Registry) AddRoot(mod Module) {
	r.root = append(r.root, mod)
}

// NoRoute sets the handler for unmatched paths.
func (r *Registry) NoRoute(h gin.HandlerFunc) {
	r.noRoute = h
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
	base := r.Engine.Group("")
	for _, m := range r.root {
		m.Register(base)
	}
	if r.noRoute != nil {
		r.Engine.NoRoute(r.noRoute)
	}
}
