// Package chainmap groups a chain of maps together in precedence order and
// provides a single, unified view into the values. Key semantics match an
// ordinary Go map, except the value associated with a key is the value held
// by the highest-precedence layer that contains the key.
//
// # Precedence
//
// Layers added earlier have precedence over those added later. The first
// layer pushed onto the chain has the highest precedence, while the most
// recently pushed layer has the lowest.
//
// # Performance
//
// Each read scans the chain of layers in order, so every operation completes
// in worst-case O(N) map lookups, with N the number of layers. The structure
// suits cases where the number of reads is low compared to the number of
// entries per layer, such as configuration merging with a handful of scopes
// (environment over user settings over defaults).
//
// # Concurrency
//
// A ChainMap has no internal locking. It is designed to be owned by a single
// goroutine at a time; callers that need shared access must guard the whole
// chain with their own mutex.
package chainmap
