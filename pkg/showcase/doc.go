// Package showcase is the runtime of the component showcase.
//
// A Runtime indexes a module Registry into display groups, loads one module's
// stories on demand, tracks the selected module and variant together with the
// view toggles, re-synchronizes the open module when the host signals that the
// registry changed, and owns the toolbar slot the active story writes into.
//
// Runtime is an event-loop state machine: it is not safe for concurrent use and
// never blocks. Asynchronous work (module loads) is handed back to the caller as
// a LoadRequest; its LoadResult is committed with Settle, which discards any
// result that is not the most recently issued request. Session wraps a Runtime
// for callers that receive events from many goroutines, such as HTTP handlers.
package showcase
