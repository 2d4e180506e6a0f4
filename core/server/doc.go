// Package server runs an http.Handler with production timeouts and
// graceful shutdown.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// TLS comes either from certificate files (SERVER_TLS_CERT_FILE and
// SERVER_TLS_KEY_FILE) or from Let's Encrypt through
// golang.org/x/crypto/acme/autocert when SERVER_AUTOCERT_DOMAINS is set.
// With autocert a plain HTTP listener on the challenge address answers
// ACME HTTP-01 challenges and redirects everything else to HTTPS.
package server
