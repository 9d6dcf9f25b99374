// Package domain defines the transit data models and the contracts shared
// across the app. It contains plain wire types (in types) and interfaces (in
// interfaces) only; exports.go re-exports both for compact imports.
package domain
