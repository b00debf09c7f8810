package redisx

import "time"

const (
	// Cart soft hold counter: cart:hold:{session_id}:{variant_id}:{branch_id} -> qty
	KeyCartHold = "cart:hold:%s:%s:%s"

	// TTLCartHold bounds the life of an advisory cart hold. A session that
	// keeps its cart alive refreshes the TTL on every Hold call; an abandoned
	// cart simply expires.
	TTLCartHold = 30 * time.Minute
)
