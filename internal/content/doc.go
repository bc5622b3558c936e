// Package content manages the website content collections.
//
// Every collection lives in a JSON file (the primary store) and is
// mirrored to a secondary store, normally MongoDB. Coordinator applies
// each write to the file first and then to the mirror, under a
// per-collection lock.
//
// # Core Components
//
//   - Coordinator: validates payloads and runs every read and write
//   - FileStore: one pretty-printed JSON file per collection, written atomically
//   - Mirror: the secondary store contract
//   - MongoMirror: Mirror backed by one MongoDB collection per content collection
//   - NopMirror: Mirror that discards writes, for file-only deployments
//   - Schema: per-collection addressing and required fields
//
// # Basic Usage
//
//	mirror := content.NewMongoMirror(db)
//	c, err := content.NewFromConfig(cfg, mirror, content.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	p, err := c.Create(ctx, "projects", content.Item{
//		"title": "Hello, World!",
//		"date":  "2024-05-01",
//	})
//	// p.ID() == "hello-world", p.Slug() == "hello-world"
//
//	_, err = c.Patch(ctx, "projects", p.ID(), content.Item{"featured": true})
//	_, err = c.Delete(ctx, "projects", "index-0")
//
// # Collections
//
//	projects     by id     requires title, date
//	articles     by id     requires title, excerpt, content, date
//	experiences  by index  requires title, company, date
//	studies      by index  requires title, date
//	resume       singleton
//
// Id-addressed items get an id and a slug on create. A missing id is
// derived from the title (or the collection's fallback), a missing slug
// from the title or the id, and both are made unique within the
// collection with -2, -3, ... suffixes. Locators accept an id, "index-N"
// or a bare "N"; index-addressed collections ignore ids.
//
// # Items
//
// Item is a plain JSON object. Numbers read from either store are kept as
// json.Number, so integers beyond 2^53 survive a rewrite of the file. The
// key "_id" (ReservedKey) belongs to the mirror and is dropped from every
// payload and every stored item.
//
// # Failure Handling
//
// A failed file write leaves both stores unchanged and returns
// ErrStorage. A failed mirror write keeps the file change, returns
// ErrMirrorWrite and marks the collection drifted; Resync, ResyncAll or
// ResyncDrifted push the file copy to the mirror and clear the mark.
// Mirror writes ignore request cancellation once the file is written.
//
//	if errors.Is(err, content.ErrMirrorWrite) {
//		// the file holds the change; the mirror will be repaired
//	}
//
// SyncExternal resyncs a collection only when its file was changed by
// another process, such as a manual edit picked up by a file watcher.
package content
