// Package catalog lists routes and schedules and filters them on the client.
//
// A route matches when the query is a case-insensitive substring of its
// route number, start stop or end stop. A schedule matches on its route
// number. An empty query matches everything. Listings are cached for the
// service's TTL; Invalidate drops them early and Close stops eviction.
package catalog
