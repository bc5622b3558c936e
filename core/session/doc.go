// Package session implements server-side admin sessions with CSRF tokens.
//
// A session binds an opaque, randomly generated id to the bearer token
// that authenticated the admin. The id travels in an HttpOnly cookie; the
// session's CSRF token travels in a script-readable cookie and must be
// echoed back in a header on every mutating request.
//
// # Core Components
//
//   - Session: the stored record (id, bearer, CSRF token, expiry)
//   - Manager: drives the lifecycle and enforces the CSRF rule
//   - Store: persistence contract with atomic lookup-and-evict and replace
//   - MemoryStore: single-process store, the default
//   - RedisStore: shared store for multi-replica deployments
//
// # Basic Usage
//
//	store := session.NewMemoryStore()
//	mgr, err := session.NewFromConfig(cfg, store, session.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	// After a successful login:
//	s, err := mgr.Create(ctx, bearer, time.Duration(expiresIn)*time.Second)
//
//	// On every admin request:
//	s, err := mgr.Validate(ctx, id, r.Method, r.Header.Get("X-CSRF-Token"))
//	switch {
//	case errors.Is(err, session.ErrExpired):
//		// tell the client to log in again
//	case errors.Is(err, session.ErrCSRFMismatch):
//		// reject with 403
//	}
//
//	// After the upstream token was refreshed:
//	next, err := mgr.Refresh(ctx, s.ID, newBearer, ttl)
//
//	// On logout:
//	_ = mgr.Revoke(ctx, s.ID)
//
// # Lifecycle
//
// Sessions move from ABSENT to ACTIVE on Create and leave ACTIVE either by
// Revoke or by expiry. The lifetime is the caller's hint capped at
// Config.TTLSeconds; a non-positive hint means the cap.
//
// A session is valid up to and including ExpiresAt and expired strictly
// after it. The first lookup of an expired session evicts it and returns
// ErrExpired; afterwards the id is unknown and Validate returns
// ErrNotAuthenticated. Refresh replaces the old id atomically, so the old
// cookie stops working before the new session is handed out.
//
// # CSRF
//
// GET, HEAD and OPTIONS skip the check. Every other method needs the header
// to equal the session's token; the comparison is constant-time.
//
// # Redis
//
// RedisStore keeps each session as "<expiresUnixMilli>|<json>" under
// prefix+id with a TTL of the remaining lifetime plus a short grace
// period, so an expired entry can still be told apart from an unknown one.
// Lookup and Replace run as Lua scripts. Replace touches two keys, so the
// key prefix carries a Redis Cluster hash tag; WithKeyPrefix adds one when
// the given prefix has none.
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	store, err := session.NewRedisStore(client, session.WithKeyPrefix("myapp:session:"))
//	// keys look like "{myapp:session}:<id>"
//
// # Configuration
//
//	SESSION_TTL_SECONDS   lifetime cap in seconds (default 900)
//	SESSION_STORE         "memory" or "redis" (default memory)
//	SESSION_REDIS_PREFIX  Redis key prefix (default "{folio:session}:")
package session
