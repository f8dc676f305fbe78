// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// serveMetrics serves /metrics until ctx is canceled.
func serveMetrics(ctx context.Context, host string, port int, log zerolog.Logger) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on address %s", addr)
	}

	router := echo.New()
	router.HideBanner = true
	router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	srv := http.Server{Handler: router}

	log.Info().Str("address", addr).Msg("Serving metrics")
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			return maskAny(err)
		}
		log.Debug().Str("address", addr).Msg("Done serving metrics")
		return nil
	case err := <-errc:
		return errors.Wrap(err, "metrics server failed")
	}
}
