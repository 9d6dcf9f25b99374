// Package dashboard loads the signed-in user's overview: profile,
// favourites and feedback, fetched concurrently.
package dashboard
