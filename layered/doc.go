// Package layered builds named, source-tagged configuration layers on top
// of the chainmap core.
//
// A Stack orders its layers by source precedence (command-line arguments
// override environment variables, which override workspace settings, and so
// on down to built-in defaults) and answers reads through a precedence-
// resolved chain view. Beyond plain lookup it reports which layer supplied
// a value, supports read-only layers, and allows targeted writes into a
// specific named layer.
//
// Like chainmap, a Stack has no internal locking; callers that share one
// across goroutines must provide their own synchronization.
package layered
