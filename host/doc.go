/*
Package host defines the execution environment the revenue-share contract
runs against: a durable keyed store, a witness-based authorization facade
and an append-only notification log.

All three are explicit dependencies. A Runtime bundles concrete
implementations and executes public contract operations as atomic
invocations: every write and every notification produced by an invocation
either takes effect completely or, if the invocation aborts, not at all.
Within one invocation the contract observes its own writes; storage
mutations are committed before any notification is published. A backend
serving as both the store and the log (BoltStore) commits an
invocation's writes and notifications in a single transaction; with
separate backends a failed publish rolls the applied writes back to
their prior values.

Fatal failures inside an invocation are panics. Invoke recovers them into
an *AbortError and discards all buffered effects, mirroring the
all-or-nothing transaction semantics of the ledger the contract was
designed for.
*/
package host
