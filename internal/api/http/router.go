package http

import (
	"net/http"

	"volunteer-backend/internal/api/http/middleware"
	"volunteer-backend/internal/config"
	"volunteer-backend/internal/metrics"

	"github.com/gorilla/mux"
)

// Handlers groups every route handler the router mounts
type Handlers struct {
	Auth      *AuthHandler
	Posts     *PostHandler
	Volunteer *VolunteerHandler
	Contact   *ContactHandler
	Health    *HealthHandler
}

type route struct {
	method  string
	path    string
	handler http.Handler
}

func (h Handlers) routes() []route {
	return []route{
		{http.MethodPost, "/jwt", http.HandlerFunc(h.Auth.IssueToken)},
		{http.MethodPost, "/logout", http.HandlerFunc(h.Auth.Logout)},

		{http.MethodGet, "/posts", http.HandlerFunc(h.Posts.ListPosts)},
		{http.MethodGet, "/featured-posts", http.HandlerFunc(h.Posts.FeaturedPosts)},
		{http.MethodGet, "/post/{id}", http.HandlerFunc(h.Posts.GetPost)},
		{http.MethodGet, "/my-posts/{email}", http.HandlerFunc(h.Posts.MyPosts)},
		{http.MethodPost, "/posts", http.HandlerFunc(h.Posts.CreatePost)},
		{http.MethodPut, "/post/{id}", http.HandlerFunc(h.Posts.UpdatePost)},
		{http.MethodDelete, "/post/{id}", http.HandlerFunc(h.Posts.DeletePost)},

		{http.MethodGet, "/my-volunteer-requests/{email}", http.HandlerFunc(h.Volunteer.MyRequests)},
		{http.MethodGet, "/manage-requests/{email}", http.HandlerFunc(h.Volunteer.ManageRequests)},
		{http.MethodPost, "/request-volunteer", http.HandlerFunc(h.Volunteer.Apply)},
		{http.MethodDelete, "/request/{id}", http.HandlerFunc(h.Volunteer.Cancel)},
		{http.MethodPatch, "/request/approve/{id}", http.HandlerFunc(h.Volunteer.Approve)},
		{http.MethodPatch, "/request/reject/{id}", http.HandlerFunc(h.Volunteer.Reject)},

		{http.MethodPost, "/contact-message", http.HandlerFunc(h.Contact.SubmitMessage)},
		{http.MethodGet, "/db-ping", http.HandlerFunc(h.Health.DBPing)},
		{http.MethodGet, "/", http.HandlerFunc(h.Health.Root)},
		{http.MethodGet, "/metrics", metrics.Handler()},
	}
}

// NewRouter mounts every route, wrapping those whose security level requires
// it with the token cookie check.
func NewRouter(h Handlers, auth *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(metrics.InstrumentHandler)

	for _, rt := range h.routes() {
		handler := rt.handler
		if config.GetSecurityLevel(rt.method, rt.path) != config.SecurityPublic {
			handler = auth.RequireToken(handler)
		}
		r.Handle(rt.path, handler).Methods(rt.method)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// NewServerHandler wraps the router in the process-wide middleware chain
func NewServerHandler(router http.Handler, cors *middleware.CORSMiddleware, limiter *middleware.RateLimiter) http.Handler {
	return middleware.RequestLogger(
		middleware.Recover(
			cors.Handler(
				limiter.Handler(router),
			),
		),
	)
}
