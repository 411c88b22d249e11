package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	var app *application
	get := appFrom(&app)

	rootCmd := &cobra.Command{
		Use:   "shopadmin",
		Short: "Admin client for the retail backend",
		Long: `Signs in to the retail backend, keeps the issued credentials on disk and
manages products, categories, stock and orders on behalf of the signed-in user.

Set ENV=DEV and run "shopadmin proxy" to develop against a local /api prefix.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			app, err = newApplication(flags)
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error), overrides LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "Backend base URL, overrides API_URL")

	rootCmd.AddCommand(
		newLoginCommand(get),
		newLogoutCommand(get),
		newWhoAmICommand(get),
		newRefreshCommand(get),
		newOTPCommand(get),
		newProductsCommand(get),
		newCategoriesCommand(get),
		newOrdersCommand(get),
		newStockCommand(get),
		newProxyCommand(get),
	)
	return rootCmd
}
