package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jrsteele09/go-shop-admin/apiclient"
	"github.com/jrsteele09/go-shop-admin/auth"
	"github.com/jrsteele09/go-shop-admin/credentials"
	"github.com/jrsteele09/go-shop-admin/credentials/filestore"
	"github.com/jrsteele09/go-shop-admin/internal/config"
	"github.com/jrsteele09/go-shop-admin/internal/logging"
	"github.com/jrsteele09/go-shop-admin/shop"
	"github.com/rs/zerolog"
)

// application is the composition root shared by every command.
type application struct {
	config config.Config
	log    zerolog.Logger
	store  *credentials.Store
	client *apiclient.Client
	auth   *auth.Service
	shop   *shop.Service
}

type globalFlags struct {
	envFile  string
	logLevel string
	apiURL   string
}

func newApplication(flags *globalFlags) (*application, error) {
	c, err := config.Load(flags.envFile)
	if err != nil {
		return nil, err
	}

	level := c.GetLogLevel()
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	logger := logging.New(level, c.GetLogFile())

	persister := filestore.New(c.GetCredentialsFile(), filestore.WithPassphrase(c.GetCredentialsPassphrase()))
	store := credentials.NewStore(persister, credentials.WithLogger(logger))

	baseURL := c.GetAPIBaseURL()
	if flags.apiURL != "" {
		baseURL = flags.apiURL
	}
	client := apiclient.New(baseURL, store,
		apiclient.WithDefaultTimeout(c.GetRequestTimeout()),
		apiclient.WithLogger(logger),
	)

	return &application{
		config: c,
		log:    logger,
		store:  store,
		client: client,
		auth:   auth.NewService(client, store, auth.WithLogger(logger)),
		shop:   shop.NewService(client),
	}, nil
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("printJSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

type appGetter func() *application

// appFrom is used by every RunE; the root PersistentPreRunE has populated it.
func appFrom(holder **application) appGetter {
	return func() *application {
		return *holder
	}
}
