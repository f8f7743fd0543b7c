package table

import "errors"

var ErrNotExposed = errors.New("table not exposed")

// Exposed lists the tables served over HTTP, in route registration order.
// Everything else is rejected before any SQL is built.
var Exposed = []string{"users", "courses", "lessons", "enrollments", "payments", "reviews"}

var exposedSet = func() map[string]bool {
	set := make(map[string]bool, len(Exposed))
	for _, name := range Exposed {
		set[name] = true
	}
	return set
}()

func IsExposed(name string) bool {
	return exposedSet[name]
}
