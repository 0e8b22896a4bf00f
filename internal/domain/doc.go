// Package domain contains the core types shared across the tracker: state
// vector snapshots, persisted tracker state, the freshness policy that
// decides how long a cached snapshot stays usable, and the render view
// handed to clients. The package has no dependencies outside the standard
// library and no I/O; adapters translate to and from these types at the
// edges.
package domain
