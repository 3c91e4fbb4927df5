// Package routes holds the console's page route table: which URL path
// renders which view, and the menu title and icon shown for it.
package routes

import (
	"strings"
	"sync"
)

// Meta is the navigation metadata of a route.
type Meta struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// View is a resolved page module.
type View struct {
	Module string `json:"module"`
}

// ViewLoader resolves a route's view on first use.
type ViewLoader interface {
	Module() string
	Load() (View, error)
}

type lazyView struct {
	module string
	once   sync.Once
	view   View
	err    error
	load   func(module string) (View, error)
}

// Lazy returns a ViewLoader for module that resolves it once, on the first
// Load call, and returns the cached result afterwards.
func Lazy(module string) ViewLoader {
	return LazyFunc(module, func(module string) (View, error) {
		return View{Module: module}, nil
	})
}

// LazyFunc is Lazy with a custom resolver.
func LazyFunc(module string, load func(module string) (View, error)) ViewLoader {
	return &lazyView{module: module, load: load}
}

func (l *lazyView) Module() string {
	return l.module
}

func (l *lazyView) Load() (View, error) {
	l.once.Do(func() {
		l.view, l.err = l.load(l.module)
	})
	return l.view, l.err
}

type Route struct {
	Path      string
	Name      string
	Component ViewLoader
	Meta      Meta
}

// Table is an ordered set of routes. It is read-only after New and safe
// for concurrent use.
type Table struct {
	routes []Route
	byName map[string]int
}

// New builds a table from route modules in registration order.
func New(modules ...[]Route) *Table {
	t := &Table{byName: make(map[string]int)}
	for _, module := range modules {
		for _, route := range module {
			if _, exists := t.byName[route.Name]; !exists {
				t.byName[route.Name] = len(t.routes)
			}
			t.routes = append(t.routes, route)
		}
	}
	return t
}

// Default is the console's route table. Modules are registered in file
// name order: collection, school, system.
func Default() *Table {
	return New(CollectionRoutes(), SchoolRoutes(), SystemRoutes())
}

func (t *Table) All() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Resolve returns the route whose path matches urlPath. Matching ignores
// case, a trailing slash, the query string and the fragment. When several
// routes share a path the first registered one wins.
func (t *Table) Resolve(urlPath string) (Route, bool) {
	key := normalize(urlPath)
	for _, route := range t.routes {
		if normalize(route.Path) == key {
			return route, true
		}
	}
	return Route{}, false
}

func (t *Table) ByName(name string) (Route, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Duplicates reports every normalized path claimed by more than one route,
// with the route names in registration order.
func (t *Table) Duplicates() map[string][]string {
	names := make(map[string][]string)
	for _, route := range t.routes {
		key := normalize(route.Path)
		names[key] = append(names[key], route.Name)
	}

	dups := make(map[string][]string)
	for path, n := range names {
		if len(n) > 1 {
			dups[path] = n
		}
	}
	return dups
}

func normalize(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.ToLower(strings.TrimRight(p, "/"))
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
