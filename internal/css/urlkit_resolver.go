package css

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

// URLKitResolverOptions configures the go-urlkit backed resolver.
type URLKitResolverOptions struct {
	Manager   *urlkit.RouteManager
	Group     string
	Route     string
	PathParam string
}

// URLKitResolver builds public artifact URLs through a go-urlkit route
// manager, so hosts control the CDN/base-url scheme from configuration.
type URLKitResolver struct {
	manager   *urlkit.RouteManager
	group     string
	route     string
	pathParam string
}

var _ URLResolver = (*URLKitResolver)(nil)

// NewURLKitResolver constructs a resolver backed by go-urlkit.
func NewURLKitResolver(opts URLKitResolverOptions) *URLKitResolver {
	if opts.PathParam == "" {
		opts.PathParam = "path"
	}
	return &URLKitResolver{
		manager:   opts.Manager,
		group:     strings.TrimSpace(opts.Group),
		route:     strings.TrimSpace(opts.Route),
		pathParam: opts.PathParam,
	}
}

// Resolve builds the URL for a relative artifact path.
func (r *URLKitResolver) Resolve(path string) (url string, err error) {
	if r == nil || r.manager == nil || r.group == "" || r.route == "" {
		return "", fmt.Errorf("css: url resolver not configured")
	}

	// urlkit panics on unknown groups/routes; surface that as an error.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("css: url resolution failed: %v", rec)
		}
	}()

	return r.manager.Group(r.group).Builder(r.route).
		WithParam(r.pathParam, path).
		Build()
}
