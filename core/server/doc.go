// Package server runs the HTTP listener with graceful shutdown.
//
//	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//
// Cancelling the context stops accepting connections and drains requests
// in flight for up to ShutdownTimeout.
package server
