package content

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/folio/core/logger"
	"github.com/dmitrymomot/folio/pkg/slug"
)

// Operation names used in logs.
const (
	opCreate       = "create"
	opPatch        = "patch"
	opDelete       = "delete"
	opPatchResume  = "patch_resume"
	opReplace      = "replace"
	opResync       = "resync"
	opSyncExternal = "sync_external"
)

// Coordinator applies content writes to the file store first and then to
// the mirror. A mirror failure after a successful primary write is not
// rolled back: the collection is marked drifted and repaired by Resync.
//
// The collection lock is held across both writes, so the mirror observes
// writes in primary order.
type Coordinator struct {
	files    *FileStore
	mirror   Mirror
	slugOpts []slug.Option
	logger   *slog.Logger

	driftMu sync.Mutex
	drifted map[string]struct{}
}

// NewCoordinator wires a file store and a mirror. A nil mirror means
// file-only operation.
func NewCoordinator(files *FileStore, mirror Mirror, opts ...Option) (*Coordinator, error) {
	if files == nil {
		return nil, ErrNilFileStore
	}
	if mirror == nil {
		mirror = NopMirror{}
	}
	c := &Coordinator{
		files:   files,
		mirror:  mirror,
		logger:  defaultLogger(),
		drifted: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromConfig opens the file store at cfg.DataDir.
func NewFromConfig(cfg Config, mirror Mirror, opts ...Option) (*Coordinator, error) {
	files, err := NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	if cfg.Transliterate {
		opts = append(opts, WithTransliteration())
	}
	return NewCoordinator(files, mirror, opts...)
}

// Files exposes the primary store.
func (c *Coordinator) Files() *FileStore { return c.files }

// Collections lists the collection names.
func (c *Coordinator) Collections() []string { return Names() }

// Create validates payload, assigns a unique id and slug on id-addressed
// collections and appends the item.
func (c *Coordinator) Create(ctx context.Context, collection string, payload Item) (Item, error) {
	s, err := c.listSchema(collection)
	if err != nil {
		return nil, c.fail(opCreate, collection, "", err)
	}
	if payload == nil {
		return nil, c.fail(opCreate, collection, "", invalidf("item must be an object"))
	}
	if err := s.Validate(payload); err != nil {
		return nil, c.fail(opCreate, collection, "", err)
	}

	unlock := c.files.Lock(collection)
	defer unlock()

	items, err := c.files.ReadList(ctx, collection)
	if err != nil {
		return nil, c.fail(opCreate, collection, "", storageErr(err))
	}

	it := withoutReserved(payload)
	if s.Addressing == ByID {
		if err := c.assignIdentity(s, items, it); err != nil {
			return nil, c.fail(opCreate, collection, "", err)
		}
	}

	items = append(items, it)
	if err := c.files.WriteList(ctx, collection, items); err != nil {
		return nil, c.fail(opCreate, collection, it.ID(), storageErr(err))
	}

	mctx := context.WithoutCancel(ctx)
	if s.Addressing == ByID {
		err = c.mirror.Insert(mctx, collection, it)
	} else {
		err = c.mirror.ReplaceAll(mctx, collection, items)
	}
	if err != nil {
		return nil, c.mirrorFailed(opCreate, collection, it.ID(), err)
	}

	c.logger.Info("content item created",
		logger.Component("content"),
		logger.Operation(opCreate),
		logger.Collection(collection),
		logger.Locator(it.ID()),
	)
	return it.Clone(), nil
}

// Patch shallow-merges payload into the item addressed by loc.
func (c *Coordinator) Patch(ctx context.Context, collection, loc string, payload Item) (Item, error) {
	s, err := c.listSchema(collection)
	if err != nil {
		return nil, c.fail(opPatch, collection, loc, err)
	}
	if payload == nil {
		return nil, c.fail(opPatch, collection, loc, invalidf("patch must be an object"))
	}
	payload = withoutReserved(payload)
	if v, ok := payload["id"]; ok {
		if id, isStr := v.(string); !isStr || strings.TrimSpace(id) == "" {
			return nil, c.fail(opPatch, collection, loc, invalidf("id cannot be empty"))
		}
	}
	if err := validatePatched(s, payload); err != nil {
		return nil, c.fail(opPatch, collection, loc, err)
	}

	unlock := c.files.Lock(collection)
	defer unlock()

	items, err := c.files.ReadList(ctx, collection)
	if err != nil {
		return nil, c.fail(opPatch, collection, loc, storageErr(err))
	}
	idx, err := resolve(s, items, loc)
	if err != nil {
		return nil, c.fail(opPatch, collection, loc, err)
	}

	prior := items[idx]
	others := slices.Concat(items[:idx], items[idx+1:])
	merged := prior.Merge(payload)

	if raw, ok := payload["slug"]; ok && raw != nil {
		str, isStr := raw.(string)
		if !isStr {
			return nil, c.fail(opPatch, collection, loc, invalidf("slug must be a string"))
		}
		if str != "" {
			merged["slug"] = slug.Unique(values(others, "slug"), slug.Make(str, c.slugOpts...), prior.Slug())
		}
	}
	if s.Addressing == ByID {
		if id := merged.ID(); id != prior.ID() {
			merged["id"] = slug.Unique(values(others, "id"), strings.TrimSpace(id), prior.ID())
		}
	}

	items[idx] = merged
	if err := c.files.WriteList(ctx, collection, items); err != nil {
		return nil, c.fail(opPatch, collection, loc, storageErr(err))
	}

	mctx := context.WithoutCancel(ctx)
	if s.Addressing == ByID && prior.ID() != "" {
		err = c.mirror.UpdateByID(mctx, collection, prior.ID(), merged)
	} else {
		err = c.mirror.ReplaceAll(mctx, collection, items)
	}
	if err != nil {
		return nil, c.mirrorFailed(opPatch, collection, loc, err)
	}

	return merged.Clone(), nil
}

// Delete removes the item addressed by loc and returns it.
func (c *Coordinator) Delete(ctx context.Context, collection, loc string) (Item, error) {
	s, err := c.listSchema(collection)
	if err != nil {
		return nil, c.fail(opDelete, collection, loc, err)
	}

	unlock := c.files.Lock(collection)
	defer unlock()

	items, err := c.files.ReadList(ctx, collection)
	if err != nil {
		return nil, c.fail(opDelete, collection, loc, storageErr(err))
	}
	idx, err := resolve(s, items, loc)
	if err != nil {
		return nil, c.fail(opDelete, collection, loc, err)
	}

	removed := items[idx]
	items = slices.Delete(items, idx, idx+1)
	if err := c.files.WriteList(ctx, collection, items); err != nil {
		return nil, c.fail(opDelete, collection, loc, storageErr(err))
	}

	mctx := context.WithoutCancel(ctx)
	if s.Addressing == ByID && removed.ID() != "" {
		err = c.mirror.DeleteByID(mctx, collection, removed.ID())
	} else {
		err = c.mirror.ReplaceAll(mctx, collection, items)
	}
	if err != nil {
		return nil, c.mirrorFailed(opDelete, collection, loc, err)
	}

	c.logger.Info("content item deleted",
		logger.Component("content"),
		logger.Operation(opDelete),
		logger.Collection(collection),
		logger.Locator(loc),
	)
	return removed, nil
}

// PatchResume merges payload into the resume document, creating it when
// absent.
func (c *Coordinator) PatchResume(ctx context.Context, payload Item) (Item, error) {
	if payload == nil {
		return nil, c.fail(opPatchResume, Resume, "", invalidf("patch must be an object"))
	}
	payload = withoutReserved(payload)

	unlock := c.files.Lock(Resume)
	defer unlock()

	cur, err := c.files.ReadSingleton(ctx, Resume)
	if err != nil {
		return nil, c.fail(opPatchResume, Resume, "", storageErr(err))
	}
	merged := cur.Merge(payload)
	if err := c.files.WriteSingleton(ctx, Resume, merged); err != nil {
		return nil, c.fail(opPatchResume, Resume, "", storageErr(err))
	}
	if err := c.mirror.PutSingleton(context.WithoutCancel(ctx), Resume, merged); err != nil {
		return nil, c.mirrorFailed(opPatchResume, Resume, "", err)
	}
	return merged.Clone(), nil
}

// Replace overwrites a whole collection with payload: an array for list
// collections, an object for the resume.
func (c *Coordinator) Replace(ctx context.Context, collection string, payload any) error {
	s, err := Lookup(collection)
	if err != nil {
		return c.fail(opReplace, collection, "", err)
	}

	unlock := c.files.Lock(collection)
	defer unlock()

	mctx := context.WithoutCancel(ctx)
	if s.Addressing == Singleton {
		it, err := asItem(payload)
		if err != nil {
			return c.fail(opReplace, collection, "", err)
		}
		it = withoutReserved(it)
		if err := c.files.WriteSingleton(ctx, collection, it); err != nil {
			return c.fail(opReplace, collection, "", storageErr(err))
		}
		if err := c.mirror.PutSingleton(mctx, collection, it); err != nil {
			return c.mirrorFailed(opReplace, collection, "", err)
		}
		return nil
	}

	items, err := asItems(payload)
	if err != nil {
		return c.fail(opReplace, collection, "", err)
	}
	items = slices.Clone(items)
	for n := range items {
		items[n] = withoutReserved(items[n])
	}
	if err := c.files.WriteList(ctx, collection, items); err != nil {
		return c.fail(opReplace, collection, "", storageErr(err))
	}
	if err := c.mirror.ReplaceAll(mctx, collection, items); err != nil {
		return c.mirrorFailed(opReplace, collection, "", err)
	}
	return nil
}

// Get returns a collection as stored: []Item for lists, Item (possibly
// nil) for the resume.
func (c *Coordinator) Get(ctx context.Context, collection string) (any, error) {
	s, err := Lookup(collection)
	if err != nil {
		return nil, err
	}
	if s.Addressing == Singleton {
		it, err := c.files.ReadSingleton(ctx, collection)
		if err != nil {
			return nil, storageErr(err)
		}
		return it, nil
	}
	return c.List(ctx, collection)
}

// List returns the items of a list collection.
func (c *Coordinator) List(ctx context.Context, collection string) ([]Item, error) {
	if _, err := c.listSchema(collection); err != nil {
		return nil, err
	}
	items, err := c.files.ReadList(ctx, collection)
	if err != nil {
		return nil, storageErr(err)
	}
	return items, nil
}

// Resume returns the resume document or ErrNotFound.
func (c *Coordinator) Resume(ctx context.Context) (Item, error) {
	it, err := c.files.ReadSingleton(ctx, Resume)
	if err != nil {
		return nil, storageErr(err)
	}
	if it == nil {
		return nil, ErrNotFound
	}
	return it, nil
}

// FindBySlug returns the item whose slug (or, failing that, id) equals key.
func (c *Coordinator) FindBySlug(ctx context.Context, collection, key string) (Item, error) {
	items, err := c.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	if i := slices.IndexFunc(items, func(it Item) bool { return it.Slug() == key }); i >= 0 {
		return items[i], nil
	}
	if i := slices.IndexFunc(items, func(it Item) bool { return it.ID() == key }); i >= 0 {
		return items[i], nil
	}
	return nil, ErrNotFound
}

// Resync pushes the whole primary copy of collection to the mirror.
func (c *Coordinator) Resync(ctx context.Context, collection string) error {
	s, err := Lookup(collection)
	if err != nil {
		return err
	}

	unlock := c.files.Lock(collection)
	defer unlock()

	if s.Addressing == Singleton {
		it, err := c.files.ReadSingleton(ctx, collection)
		if err != nil {
			return c.fail(opResync, collection, "", storageErr(err))
		}
		err = c.mirror.PutSingleton(ctx, collection, it)
		if err != nil {
			return c.mirrorFailed(opResync, collection, "", err)
		}
	} else {
		items, err := c.files.ReadList(ctx, collection)
		if err != nil {
			return c.fail(opResync, collection, "", storageErr(err))
		}
		if err := c.mirror.ReplaceAll(ctx, collection, items); err != nil {
			return c.mirrorFailed(opResync, collection, "", err)
		}
	}

	c.clearDrift(collection)
	if err := c.files.MarkSynced(collection); err != nil {
		c.logger.Warn("failed to record collection fingerprint",
			logger.Component("content"), logger.Collection(collection), logger.Error(err))
	}
	c.logger.Debug("collection resynced",
		logger.Component("content"), logger.Operation(opResync), logger.Collection(collection))
	return nil
}

// ResyncAll resyncs every collection concurrently. It returns the names
// that succeeded and the joined errors of those that did not.
func (c *Coordinator) ResyncAll(ctx context.Context) ([]string, error) {
	names := Names()
	errs := make([]error, len(names))

	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			errs[i] = c.Resync(ctx, name)
			return nil
		})
	}
	_ = g.Wait()

	var synced []string
	for i, name := range names {
		if errs[i] == nil {
			synced = append(synced, name)
		}
	}
	return synced, errors.Join(errs...)
}

// ResyncDrifted resyncs the collections whose last mirror write failed.
func (c *Coordinator) ResyncDrifted(ctx context.Context) error {
	var errs []error
	for _, name := range c.Drifted() {
		if err := c.Resync(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SyncExternal resyncs collection only if its file was changed by
// something other than this process. It reports whether a resync ran.
func (c *Coordinator) SyncExternal(ctx context.Context, collection string) (bool, error) {
	if _, err := Lookup(collection); err != nil {
		return false, err
	}
	changed, err := c.files.Changed(collection)
	if err != nil {
		return false, c.fail(opSyncExternal, collection, "", storageErr(err))
	}
	if !changed {
		return false, nil
	}
	if err := c.Resync(ctx, collection); err != nil {
		return true, err
	}
	c.logger.Info("external change pushed to mirror",
		logger.Component("content"), logger.Operation(opSyncExternal), logger.Collection(collection))
	return true, nil
}

// Drifted lists collections awaiting repair.
func (c *Coordinator) Drifted() []string {
	c.driftMu.Lock()
	defer c.driftMu.Unlock()
	out := make([]string, 0, len(c.drifted))
	for name := range c.drifted {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func (c *Coordinator) listSchema(collection string) (Schema, error) {
	s, err := Lookup(collection)
	if err != nil {
		return Schema{}, err
	}
	if s.Addressing == Singleton {
		return Schema{}, invalidf("%s is a single document", collection)
	}
	return s, nil
}

// assignIdentity sets a unique id and slug on a new item.
func (c *Coordinator) assignIdentity(s Schema, existing []Item, it Item) error {
	var id string
	switch v := it["id"].(type) {
	case nil:
	case string:
		id = strings.TrimSpace(v)
	default:
		return invalidf("id must be a string")
	}
	if id == "" {
		id = slug.Make(it.Title(), append([]slug.Option{slug.Fallback(s.Fallback)}, c.slugOpts...)...)
	}
	id = slug.Unique(values(existing, "id"), id)
	it["id"] = id

	var base string
	switch v := it["slug"].(type) {
	case nil:
	case string:
		base = v
	default:
		return invalidf("slug must be a string")
	}
	if strings.TrimSpace(base) == "" {
		base = it.Title()
	}
	if strings.TrimSpace(base) == "" {
		base = id
	}
	it["slug"] = slug.Unique(values(existing, "slug"), slug.Make(base, c.slugOpts...))
	return nil
}

// validatePatched rejects patches that blank out a required field.
func validatePatched(s Schema, patch Item) error {
	var blank []string
	for _, f := range s.Required {
		if _, ok := patch[f]; ok && !patch.present(f) {
			blank = append(blank, f)
		}
	}
	if len(blank) > 0 {
		return invalidf("%s: required field(s) cannot be empty: %s", s.Name, strings.Join(blank, ", "))
	}
	return nil
}

func (c *Coordinator) fail(op, collection, loc string, err error) error {
	level := slog.LevelError
	if errors.Is(err, ErrInvalidPayload) || errors.Is(err, ErrNotFound) {
		level = slog.LevelWarn
	}
	c.logger.Log(context.Background(), level, "content operation failed",
		logger.Component("content"),
		logger.Operation(op),
		logger.Collection(collection),
		logger.Locator(loc),
		logger.Error(err),
	)
	return err
}

func (c *Coordinator) mirrorFailed(op, collection, loc string, err error) error {
	c.markDrift(collection)
	c.logger.Error("mirror write failed, collection marked for resync",
		logger.Component("content"),
		logger.Operation(op),
		logger.Collection(collection),
		logger.Locator(loc),
		logger.Store("mirror"),
		logger.Error(err),
	)
	return errors.Join(ErrMirrorWrite, err)
}

func (c *Coordinator) markDrift(collection string) {
	c.driftMu.Lock()
	c.drifted[collection] = struct{}{}
	c.driftMu.Unlock()
}

func (c *Coordinator) clearDrift(collection string) {
	c.driftMu.Lock()
	delete(c.drifted, collection)
	c.driftMu.Unlock()
}

func storageErr(err error) error {
	if errors.Is(err, ErrStorage) {
		return err
	}
	return errors.Join(ErrStorage, err)
}
