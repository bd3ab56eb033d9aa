// Package router maps navigation paths to screens and applies the access
// guards. Patterns are matched by a chi route tree.
package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Access is who may see a route.
type Access int

const (
	// Public routes render for everyone.
	Public Access = iota
	// Protected routes need a signed-in user.
	Protected
	// Guest routes are only for anonymous users (login, sign up).
	Guest
)

func (a Access) String() string {
	switch a {
	case Protected:
		return "protected"
	case Guest:
		return "guest"
	default:
		return "public"
	}
}

// Route names.
const (
	Home        = "home"
	PublicPDFs  = "public"
	Viewer      = "viewer"
	Login       = "login"
	Register    = "register"
	Dashboard   = "dashboard"
	Upload      = "upload"
	Profile     = "profile"
	Annotations = "annotations"
)

// Redirect targets.
const (
	RootPath      = "/"
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

type Route struct {
	Pattern string
	Name    string
	Access  Access
}

// Routes is the application route table.
var Routes = []Route{
	{Pattern: "/", Name: Home, Access: Public},
	{Pattern: "/public", Name: PublicPDFs, Access: Public},
	{Pattern: "/pdf/{id}", Name: Viewer, Access: Public},
	{Pattern: "/login", Name: Login, Access: Guest},
	{Pattern: "/register", Name: Register, Access: Guest},
	{Pattern: "/dashboard", Name: Dashboard, Access: Protected},
	{Pattern: "/upload", Name: Upload, Access: Protected},
	{Pattern: "/profile", Name: Profile, Access: Protected},
	{Pattern: "/annotations", Name: Annotations, Access: Protected},
}

// Match is a resolved route.
type Match struct {
	Route  Route
	Path   string
	Params map[string]string
}

// Decision is the outcome of Resolve: either a match to render or a path to
// go to instead.
type Decision struct {
	Match    Match
	Redirect string
}

type Router struct {
	mux    *chi.Mux
	routes map[string]Route
}

// New builds a router over routes; with none it uses Routes.
func New(routes ...Route) *Router {
	if len(routes) == 0 {
		routes = Routes
	}
	r := &Router{mux: chi.NewRouter(), routes: make(map[string]Route, len(routes))}
	noop := func(http.ResponseWriter, *http.Request) {}
	for _, rt := range routes {
		r.mux.Get(rt.Pattern, noop)
		r.routes[rt.Pattern] = rt
	}
	return r
}

// Match finds the route for path, ignoring any query and trailing slash.
func (r *Router) Match(path string) (Match, bool) {
	path = Clean(path)
	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, http.MethodGet, path) {
		return Match{}, false
	}
	rt, ok := r.routes[rctx.RoutePattern()]
	if !ok {
		return Match{}, false
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		params[k] = rctx.URLParams.Values[i]
	}
	return Match{Route: rt, Path: path, Params: params}, true
}

// Resolve applies the guards: protected routes send anonymous users to
// /login, guest routes send signed-in users to /dashboard and unknown paths
// go to /.
func (r *Router) Resolve(path string, authenticated bool) Decision {
	m, ok := r.Match(path)
	switch {
	case !ok:
		return Decision{Redirect: RootPath}
	case m.Route.Access == Protected && !authenticated:
		return Decision{Redirect: LoginPath}
	case m.Route.Access == Guest && authenticated:
		return Decision{Redirect: DashboardPath}
	}
	return Decision{Match: m}
}

// Clean normalises a user-typed path.
func Clean(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// ViewerPath is the viewer route for document id.
func ViewerPath(id string) string { return "/pdf/" + id }
