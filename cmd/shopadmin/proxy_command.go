package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-shop-admin/devproxy"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newProxyCommand(app appGetter) *cobra.Command {
	var origins []string
	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Serve the local /api prefix and forward it to the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			displayAppname(a.config.GetAppName())

			p, err := devproxy.New(a.config.GetProxyTarget(),
				devproxy.WithLogger(a.log),
				devproxy.WithAllowedOrigins(origins...),
			)
			if err != nil {
				return err
			}
			server := &http.Server{
				Addr:              a.config.GetProxyAddr(),
				Handler:           p,
				ReadHeaderTimeout: 10 * time.Second,
			}
			return runProxy(server, a.log)
		},
	}
	cmd.Flags().StringSliceVar(&origins, "allow-origin", []string{"http://localhost:3000"}, "Origins allowed to call the proxy from a browser")
	return cmd
}

func runProxy(server *http.Server, log zerolog.Logger) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listenAndServe(server, log)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	if err := shutdown(server); err != nil {
		return err
	}
	log.Info().Msg("Proxy stopped")
	return nil
}

func listenAndServe(server *http.Server, log zerolog.Logger) error {
	log.Info().Str("addr", server.Addr).Msg("Proxy listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
