// Package engine orchestrates temporal negotiation between the transport
// layer, the route registry, the negotiation cache, and the backend
// providers. It implements the transport.Negotiator contract: the point
// lookup flow (parse time, route, fetch or reuse timemap, select the
// closest memento) and the timeline listing flow (route, fetch or reuse
// timemap, describe it).
package engine
