package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/user"
	"jobboard/internal/http/handlers"
	"jobboard/internal/http/metrics"
	httpmw "jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	AnalyticsHandler   *handlers.AnalyticsHandler
	StudentHandler     *handlers.StudentHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Limiter            httpmw.Limiter
	Metrics            *metrics.Collector
	Logger             *slog.Logger
	RequestTimeout     time.Duration
	// Ready reports whether backing stores answer; nil means always ready.
	Ready func(ctx context.Context) error
}

type Router struct {
	deps    RouterDependencies
	handler http.Handler
}

const (
	maxBodyBytes   = 1 << 20
	loginRateLimit = 10
)

func NewRouter(deps RouterDependencies) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewCollector()
	}
	r := &Router{deps: deps}
	r.handler = httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover,
		httpmw.Metrics(deps.Metrics),
		httpmw.Timeout(deps.RequestTimeout),
	)
	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	login := httpmw.RateLimit(r.deps.Limiter, func(req *http.Request) string {
		return "login:" + httpmw.ClientIP(req)
	}, loginRateLimit, time.Minute)(http.HandlerFunc(r.deps.AuthHandler.Login))

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := strings.TrimSuffix(req.URL.Path, "/")
		if path == "" {
			path = "/"
		}

		switch {
		case req.Method == http.MethodGet && path == "/health":
			r.health(w, req)
			return
		case req.Method == http.MethodGet && path == "/metrics":
			metrics.NewHandler(r.deps.Metrics).ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			login.ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs":
			r.deps.JobHandler.Search(w, req)
			return
		case req.Method == http.MethodGet && isResource(path, "/jobs/") && path != "/jobs/mine":
			r.deps.JobHandler.Get(w, req)
			return
		}

		if path == "/auth/me" || strings.HasPrefix(path, "/jobs") || strings.HasPrefix(path, "/applications") || path == "/students" {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req, path)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		notFound(w)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request, path string) {
	recruiter := httpmw.RequireRole(user.RoleRecruiter)
	student := httpmw.RequireRole(user.RoleStudent)

	switch {
	case req.Method == http.MethodGet && path == "/auth/me":
		r.deps.AuthHandler.Me(w, req)
		return
	case req.Method == http.MethodPost && path == "/jobs":
		recruiter(http.HandlerFunc(r.deps.JobHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/jobs/mine":
		recruiter(http.HandlerFunc(r.deps.JobHandler.ListOwn)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && isSubresource(path, "/jobs/", "/status"):
		recruiter(http.HandlerFunc(r.deps.JobHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && isSubresource(path, "/jobs/", "/apply"):
		student(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && isSubresource(path, "/jobs/", "/applications"):
		recruiter(http.HandlerFunc(r.deps.ApplicationHandler.ListForJob)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/mine":
		student(http.HandlerFunc(r.deps.ApplicationHandler.ListOwn)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/analytics":
		recruiter(http.HandlerFunc(r.deps.AnalyticsHandler.Get)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && isSubresource(path, "/applications/", "/status"):
		recruiter(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/students":
		recruiter(http.HandlerFunc(r.deps.StudentHandler.Search)).ServeHTTP(w, req)
		return
	}

	notFound(w)
}

func (r *Router) health(w http.ResponseWriter, req *http.Request) {
	if r.deps.Ready != nil {
		if err := r.deps.Ready(req.Context()); err != nil {
			r.deps.Logger.WarnContext(req.Context(), "health.not_ready", slog.String("error", err.Error()))
			response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// isResource matches prefix followed by exactly one segment.
func isResource(path, prefix string) bool {
	rest, ok := strings.CutPrefix(path, prefix)
	return ok && rest != "" && !strings.Contains(rest, "/")
}

// isSubresource matches prefix + one segment + suffix.
func isSubresource(path, prefix, suffix string) bool {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok {
		return false
	}
	id, ok := strings.CutSuffix(rest, suffix)
	return ok && id != "" && !strings.Contains(id, "/")
}

func notFound(w http.ResponseWriter) {
	response.Error(w, common.NewError(common.CodeNotFound, "route not found", nil))
}
