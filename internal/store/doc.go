// Package store implements a generic, thread-safe, unidirectional state
// engine: a single State evolved only through dispatched Actions.
//
// ARCHITECTURE:
//
// One Dispatch call runs the full pipeline under a single write-lock
// acquisition:
//
//	Middleware chain -> Reducer fold -> History append -> Commit -> Subscribers
//
// Holding the lock across the whole pipeline guarantees that no caller ever
// observes a state produced by a partially-applied reducer chain, and that
// concurrent Dispatch calls are serialized in a total (if unspecified) order.
// Dispatch calls strictly sequenced by the caller are applied in that order.
//
// CRITICAL PATTERN — fire-and-forget:
//
// Middlewares and subscribers run inside the locked region. They must NEVER
// call Dispatch synchronously: the lock is not reentrant and the call would
// block forever waiting on its own stack. Work that needs to dispatch again
// (a network fetch reporting back, a delayed follow-up) must be spawned as an
// independent goroutine — DispatchAsync exists to make those call sites
// self-documenting. The spawned goroutine acquires the lock on its own
// schedule, after the triggering pipeline has released it.
//
// History is an append-only log of the actions that reached the reducers,
// post middleware substitution. It is never truncated for the lifetime of
// the Store.
//
// Registration (AddReducer, AddMiddleware, AddSubscriber) is setup-only.
// Calling it concurrently with Dispatch is unsupported.
package store
