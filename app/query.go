package app

import (
	"fmt"
	"strings"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
)

// QueryRouter allows us to register many query handlers
// to different paths and then direct each query
// to the proper handler.
type QueryRouter struct {
	routes map[string]swapchain.QueryHandler
}

var _ swapchain.QueryRouter = QueryRouter{}

// NewQueryRouter initializes a QueryRouter with no routes
func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]swapchain.QueryHandler, 10),
	}
}

// RegisterAll registers a number of QueryRegister at once
func (r QueryRouter) RegisterAll(qr ...swapchain.QueryRegister) {
	for _, q := range qr {
		q(r)
	}
}

// Register adds a new Handler for the given path.
// panics if another Handler was already registered
func (r QueryRouter) Register(path string, h swapchain.QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path or nil.
func (r QueryRouter) Handler(path string) swapchain.QueryHandler {
	return r.routes[path]
}

// Paths returns all registered paths.
func (r QueryRouter) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	return paths
}

// splitPath splits a query path into the route and the modifier, which
// follows a question mark, ie. "/escrows/maker?prefix".
func splitPath(path string) (string, string) {
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 1 {
		return chunks[0], swapchain.KeyQueryMod
	}
	return chunks[0], chunks[1]
}

// query resolves the path and runs the query against given store.
func (r QueryRouter) query(db swapchain.ReadOnlyKVStore, path string, data []byte) ([]swapchain.Model, error) {
	route, mod := splitPath(path)
	h := r.Handler(route)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no query handler for %q", route)
	}
	return h.Query(db, mod, data)
}
