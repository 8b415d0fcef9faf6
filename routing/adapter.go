package routing

// Flags are the mode tags of a route or mount statement, e.g. "render" in
//
//    route "a/b" to "path/to/you.html" (render)
//
type Flags []string

// Has is true if flag f is set.
func (flags Flags) Has(f string) bool {
	for _, flag := range flags {
		if flag == f {
			return true
		}
	}
	return false
}

// SubRoute is a group of routes sharing a base URL. Sub-routes are created by
// an Adapter and handed back to it with every route registered within.
type SubRoute interface {
	BaseURL() string
}

// Adapter is the boundary to a web-serving backend. Implementations register
// the statements of a routing file with a concrete framework or server
// configuration. A nil SubRoute denotes the top level.
type Adapter interface {
	// Route registers a view for url, rendered from the template at filePath.
	// data is passed to the template.
	Route(url, filePath string, flags Flags, data interface{}, sub SubRoute) error
	// Mount maps a static directory to baseURL.
	Mount(baseFilePath, baseURL string, flags Flags, sub SubRoute) error
	// SubRoute returns the sub-route for baseURL.
	SubRoute(baseURL string) (SubRoute, error)
	// RegisterAll is called after the last statement. Backends which, for
	// example, generate server configuration files write them here.
	RegisterAll() error
}
