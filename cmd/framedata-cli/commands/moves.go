package commands

import (
	"framedata/lib/serviceutil"

	"github.com/spf13/cobra"
)

var movesDb *string

func init() {
	movesDb = movesCmd.Flags().String("db", "", "Read moves from this sqlite database instead of the wiki, defaults to the database of the config.")
	rootCmd.AddCommand(movesCmd)
}

var movesCmd = &cobra.Command{
	Use:   "moves <character> [--db <path/to/catalog.db>]",
	Short: "Lists the moves of a character in page order.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		catalog, characterID, err := characterCatalog(cmd.Context(), *movesDb, args[0])
		if err != nil {
			serviceutil.Fatal("failed to get character", err)
		}
		moves, err := catalog.Get(characterID)
		if err != nil {
			serviceutil.Fatal("failed to get moves", err)
		}
		character, _ := catalog.Roster().Get(characterID)
		renderMoves(character.Name, moves)
	},
}
