// Package provider defines the capability interface every archive backend
// must implement and the route registry that maps resource URIs to the
// provider serving them. Concrete backends (archive APIs, snapshot stores)
// live outside the gateway core; the registry only holds their compiled
// URI patterns and shares the provider instances read-only across requests.
package provider
