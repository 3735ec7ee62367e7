package commands

import (
	"context"
	"fmt"
	"strings"

	"framedata/internal/framedata"
	"framedata/lib/serviceutil"

	"github.com/spf13/cobra"
)

var findDb *string
var findSuggestions *int

func init() {
	findDb = findCmd.Flags().String("db", "", "Read moves from this sqlite database instead of the wiki, defaults to the database of the config.")
	findSuggestions = findCmd.Flags().Int("suggestions", 5, "The number of similar moves to print when nothing matches.")
	rootCmd.AddCommand(findCmd)
}

// characterCatalog returns a catalog holding the character ref names, reading the
// saved catalog first.
func characterCatalog(ctx context.Context, dbPath, ref string) (*framedata.Catalog, string, error) {
	if dbPath == "" {
		dbPath = config.Database
	}

	catalog, err := catalogFor(ctx, dbPath, []string{ref})
	if err != nil {
		return nil, "", err
	}
	character, ok := catalog.Roster().Resolve(ref)
	if !ok {
		return nil, "", unknownCharacter(catalog.Roster(), ref)
	}
	if _, err := catalog.Get(character.ID); err == nil {
		return catalog, character.ID, nil
	}

	// the saved catalog does not have this character
	catalog, err = loadCatalog(ctx, []string{ref})
	if err != nil {
		return nil, "", err
	}
	_, err = catalog.Get(character.ID)
	if err != nil {
		return nil, "", fmt.Errorf("%s was not loaded", character.Name)
	}
	return catalog, character.ID, nil
}

var findCmd = &cobra.Command{
	Use:   "find <character> <move> [--db <path/to/catalog.db>]",
	Short: "Prints the frame data of a move, given in any notation or by name.",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		catalog, characterID, err := characterCatalog(cmd.Context(), *findDb, args[0])
		if err != nil {
			serviceutil.Fatal("failed to get character", err)
		}

		query := strings.Join(args[1:], " ")
		move, ok := catalog.FindMove(characterID, query)
		if ok {
			renderMove(move)
			return
		}

		fmt.Printf("no move of %s matches %q\n", characterID, query)
		suggestions := catalog.Suggest(characterID, query, *findSuggestions)
		if len(suggestions) == 0 {
			return
		}
		renderMoves("did you mean", suggestions)
	},
}
