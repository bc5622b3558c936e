package api

import (
	"github.com/dmitrymomot/folio/core/handler"
	"github.com/dmitrymomot/folio/core/response"
)

// listPublic serves {"<collection>": [...]}.
func (a *API) listPublic(collection string) handler.HandlerFunc[Context] {
	return func(ctx Context) handler.Response {
		items, err := a.content.List(ctx, collection)
		if err != nil {
			return response.Error(err)
		}
		return response.JSON(map[string]any{collection: items})
	}
}

// showPublic serves {"<key>": item} for the item whose slug (or id)
// matches the path.
func (a *API) showPublic(collection, key string) handler.HandlerFunc[Context] {
	return func(ctx Context) handler.Response {
		item, err := a.content.FindBySlug(ctx, collection, ctx.Param("slug"))
		if err != nil {
			return response.Error(err)
		}
		return response.JSON(map[string]any{key: item})
	}
}

func (a *API) resume(ctx Context) handler.Response {
	item, err := a.content.Resume(ctx)
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(map[string]any{"resume": item})
}
