package commands

import (
	"fmt"
	"log/slog"

	"framedata/internal/store"
	"framedata/lib/serviceutil"

	"github.com/spf13/cobra"
)

var loadDb *string
var loadWarnings *bool

func init() {
	loadDb = loadCmd.Flags().String("db", "", "The sqlite database to save the catalog to, defaults to the database of the config.")
	loadWarnings = loadCmd.Flags().Bool("warnings", false, "Print every warning of the load.")
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load [character...] [--db <path/to/catalog.db>]",
	Short: "Scrapes the frame data of the given characters (every character by default) and prints a summary.",
	Run: func(cmd *cobra.Command, args []string) {
		catalog, err := loadCatalog(cmd.Context(), args)
		if err != nil {
			serviceutil.Fatal("failed to load", err)
		}
		renderSummary(catalog)

		if *loadWarnings {
			report := catalog.Report()
			for _, character := range catalog.Roster().All() {
				for _, w := range report.Warnings[character.ID] {
					fmt.Printf("%s: %s\n", character.ID, w)
				}
			}
		}

		dbPath := *loadDb
		if dbPath == "" {
			dbPath = config.Database
		}
		if dbPath == "" {
			return
		}

		db, err := openDatabase(dbPath)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer db.Close()

		err = store.Save(cmd.Context(), db, catalog)
		if err != nil {
			serviceutil.Fatal("failed to save catalog", err)
		}
		slog.Info("saved catalog", "db", dbPath, "moves", catalog.Len())
	},
}
