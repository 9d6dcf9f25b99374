// Package geo fits map viewports around route geometry and measures
// distances between coordinates.
//
// Fit and Zoom reproduce what a slippy map does when asked to "fit bounds":
// the smallest box over a set of points, optionally padded, and the largest
// integer Web-Mercator zoom at which that box fits a viewport of a given
// pixel size.
package geo
