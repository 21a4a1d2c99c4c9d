// Package preload hints the pages a client is likely to open next and warms
// what those pages load first.
package preload

import "strings"

var exactNext = map[string][]string{
	"/":                {"/listings", "/vehicles", "/auth"},
	"/listings":        {"/listing/", "/auth"},
	"/vehicles":        {"/listing/", "/auth"},
	"/auth":            {"/dashboard", "/profile"},
	"/dashboard":       {"/create-listing", "/subscription"},
	"/pricing":         {"/subscription", "/auth"},
	"/subscription":    {"/pricing", "/dashboard"},
	"/profile":         {"/dashboard"},
	"/create-listing":  {"/dashboard"},
	"/booking-success": {"/dashboard"},
}

var prefixNext = []struct {
	prefix string
	next   []string
}{
	{"/listing/", []string{"/checkout", "/auth"}},
	{"/admin", []string{"/admin/users", "/admin/bookings"}},
}

// LikelyNext returns the routes worth preparing when a client is on route.
// Unknown routes get no hints.
func LikelyNext(route string) []string {
	route = normalize(route)
	if next, ok := exactNext[route]; ok {
		return append([]string(nil), next...)
	}
	for _, p := range prefixNext {
		if strings.HasPrefix(route, p.prefix) {
			return append([]string(nil), p.next...)
		}
	}
	return nil
}

func normalize(route string) string {
	route = strings.TrimSpace(route)
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	if route == "" {
		return "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if len(route) > 1 {
		route = strings.TrimRight(route, "/")
		if route == "" {
			route = "/"
		}
	}
	return route
}
