// Package fare runs the fare calculator: estimate a trip, list passes, and
// ask the server which pass pays off for the given travel pattern.
//
// The estimate is required. The pass listing and the quote are best effort:
// when either fails the summary is returned without it and the failure is
// logged and noted in Summary.Warnings.
package fare
