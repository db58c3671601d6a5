package main

import (
	"net/http"
	"net/http/pprof"

	"github.com/julienschmidt/httprouter"
)

// MiddlewareMap contains middlewares chains to
// use for public-facing and ops requests.
type MiddlewareMap struct {
	public MiddlewareFunc
	ops    MiddlewareFunc
}

// SetupRoutes injects lending and ops related endpoints if required.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.NotFound = api.NotFound()
	api.SetupCatalogRoutes(router, m)
	api.SetupMemberRoutes(router, m)
	api.SetupLendingRoutes(router, m)
	if api.config.OpsEndpointsEnable {
		api.SetupOpsRoutes(router, m)
	}
	return router
}

// SetupCatalogRoutes injects the catalog related api endpoints.
func (api *APIHandler) SetupCatalogRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.GET("/", m.public(api.Index))
	router.GET("/status", m.public(api.Status))
	router.POST("/v1/books", m.public(api.CreateBook))
	router.GET("/v1/books", m.public(api.GetAllBooks))
	router.GET("/v1/books/:isbn", m.public(api.GetOneBook))
	router.DELETE("/v1/books/:isbn", m.public(api.DeleteOneBook))
	router.GET("/v1/search/books", m.public(api.SearchBooks))
	return router
}

// SetupMemberRoutes injects the member related api endpoints.
func (api *APIHandler) SetupMemberRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.POST("/v1/members", m.public(api.RegisterMember))
	router.GET("/v1/members", m.public(api.GetAllMembers))
	router.GET("/v1/members/:id", m.public(api.GetOneMember))
	router.GET("/v1/members/:id/loans", m.public(api.GetMemberLoans))
	return router
}

// SetupLendingRoutes injects the borrow and return api endpoints.
func (api *APIHandler) SetupLendingRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.POST("/v1/loans", m.public(api.BorrowBook))
	router.GET("/v1/loans/overdue", m.public(api.GetOverdueLoans))
	router.POST("/v1/returns", m.public(api.ReturnBook))
	return router
}

// SetupOpsRoutes injects internal operations related endpoints.
func (api *APIHandler) SetupOpsRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.GET("/ops/configs", m.ops(api.GetConfigs))
	router.GET("/ops/stats", m.ops(api.GetStatistics))
	router.GET("/ops/maintenance", m.ops(api.Maintenance))

	if api.config.ProfilerEnable {
		router.GET("/ops/debug/pprof/", m.ops(api.OpsHandlerWrapper(http.HandlerFunc(pprof.Index))))
		router.GET("/ops/debug/pprof/profile", m.ops(api.OpsHandlerWrapper(http.HandlerFunc(pprof.Profile))))
		router.GET("/ops/debug/pprof/trace", m.ops(api.OpsHandlerWrapper(http.HandlerFunc(pprof.Trace))))
		router.GET("/ops/debug/pprof/heap", m.ops(api.OpsHandlerWrapper(pprof.Handler("heap"))))
		router.GET("/ops/debug/pprof/goroutine", m.ops(api.OpsHandlerWrapper(pprof.Handler("goroutine"))))
	}

	return router
}
