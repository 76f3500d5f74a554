/*
Package revshare implements the revenue-share registry contract.

The contract tracks revenue-share offerings created by issuers, off-chain
metadata references attached to offerings, a per-asset investor blacklist
and revenue reports. It registers intent and publishes facts; payout
computation and distribution are performed by an external engine that
consumes the notification log.

Contract storage scheme (all keys are tag-prefixed composite byte keys):

	0x01 + issuer + index (u32 BE) -> offering record (token + bps)
	0x02 + issuer                  -> offering count (u32 BE)
	0x03 + token                   -> blacklist members, 20 bytes each
	0x04 + issuer + offeringID     -> metadata URI

Offerings are append-only: the per-issuer sequence is indexed from zero
and the separate count is always equal to its length. Blacklist mutation
is intentionally not bound to an asset-admin role: any witnessed caller
may mutate any asset's blacklist. This permissive behavior is preserved
deliberately; do not tighten it without a product decision.

# Contract notifications

offer_reg notification. Produced when an issuer registers a new offering.

	offer_reg:
	  - topic: issuer
	  - data: token, revenueShareBps

rev_rep notification. Produced when an issuer reports revenue for an
asset. The blacklist field is a point-in-time snapshot of the asset's
blacklist taken at publish time.

	rev_rep:
	  - topic: issuer, token
	  - data: amount (i128), periodId (u64), blacklist

meta_new / meta_upd notifications. Produced when offering metadata is
first written or overwritten, distinguished by prior presence.

	meta_new, meta_upd:
	  - topic: issuer
	  - data: offeringId, uri

meta_del notification. Produced when offering metadata is deleted. The
payload carries only the offering identifier.

	meta_del:
	  - topic: issuer
	  - data: offeringId

bl_add / bl_rem notifications. Produced on every blacklist add or remove
call, including idempotent repeats that do not change the set; consumers
receive one event per call.

	bl_add, bl_rem:
	  - topic: token
	  - data: investor
*/
package revshare
