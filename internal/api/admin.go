package api

import (
	"github.com/dmitrymomot/folio/core/binder"
	"github.com/dmitrymomot/folio/core/handler"
	"github.com/dmitrymomot/folio/core/response"
	"github.com/dmitrymomot/folio/internal/content"
)

type collectionName struct {
	Name string `json:"name"`
}

type collectionsResponse struct {
	Collections []collectionName `json:"collections"`
}

type collectionResponse struct {
	Collection string `json:"collection"`
	Data       any    `json:"data"`
}

type itemResponse struct {
	OK   bool         `json:"ok"`
	ID   string       `json:"id,omitempty"`
	Item content.Item `json:"item"`
}

type resyncResponse struct {
	OK          bool     `json:"ok"`
	Collections []string `json:"collections"`
}

func (a *API) listCollections(Context) handler.Response {
	names := a.content.Collections()
	out := collectionsResponse{Collections: make([]collectionName, 0, len(names))}
	for _, n := range names {
		out.Collections = append(out.Collections, collectionName{Name: n})
	}
	return response.JSON(out)
}

func (a *API) readCollection(ctx Context) handler.Response {
	name := ctx.Param("collection")
	data, err := a.content.Get(ctx, name)
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(collectionResponse{Collection: name, Data: data})
}

func (a *API) replaceCollection(ctx Context) handler.Response {
	var payload any
	if err := binder.JSON(ctx.Request(), &payload); err != nil {
		return response.Error(err)
	}
	if err := a.content.Replace(ctx, ctx.Param("collection"), payload); err != nil {
		return response.Error(err)
	}
	return response.JSON(okResponse{OK: true})
}

func (a *API) resync(ctx Context) handler.Response {
	synced, err := a.content.ResyncAll(ctx)
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(resyncResponse{OK: true, Collections: synced})
}

func (a *API) createItem(ctx Context) handler.Response {
	name := ctx.Param("collection")
	if name == content.Resume {
		return response.Error(errResumeItem)
	}
	var payload content.Item
	if err := binder.JSON(ctx.Request(), &payload); err != nil {
		return response.Error(err)
	}
	item, err := a.content.Create(ctx, name, payload)
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(itemResponse{OK: true, ID: item.ID(), Item: item})
}

func (a *API) patchItem(ctx Context) handler.Response {
	name := ctx.Param("collection")
	if name == content.Resume {
		return response.Error(errResumeItem)
	}
	var payload content.Item
	if err := binder.JSON(ctx.Request(), &payload); err != nil {
		return response.Error(err)
	}
	item, err := a.content.Patch(ctx, name, ctx.Param("itemId"), payload)
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(itemResponse{OK: true, Item: item})
}

func (a *API) patchResume(ctx Context) handler.Response {
	var payload content.Item
	if err := binder.JSON(ctx.Request(), &payload); err != nil {
		return response.Error(err)
	}
	item, err := a.content.PatchResume(ctx, payload)
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(itemResponse{OK: true, Item: item})
}

func (a *API) deleteItem(ctx Context) handler.Response {
	name := ctx.Param("collection")
	if name == content.Resume {
		return response.Error(errResumeItem)
	}
	item, err := a.content.Delete(ctx, name, ctx.Param("itemId"))
	if err != nil {
		return response.Error(err)
	}
	return response.JSON(itemResponse{OK: true, Item: item})
}
