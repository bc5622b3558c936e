// Package binder decodes request bodies for handlers.
//
//	var payload content.Item
//	if err := binder.JSON(ctx.Request(), &payload); err != nil {
//		return response.Error(err)
//	}
//
// Numbers are decoded as json.Number so integer fields round-trip
// through storage unchanged.
package binder
