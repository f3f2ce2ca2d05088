package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"jpdiet/kokkaiharvester/internal/relations"
	"jpdiet/kokkaiharvester/internal/store"
	"jpdiet/kokkaiharvester/logger"
)

var relationsCmd = &cobra.Command{
	Use:   "relations",
	Short: "Join cached minutes records to cached video records",
	Long: "Matches each Shugiin TV video to a House of Representatives " +
		"minutes record on meeting date and name, and writes the resulting " +
		"link table. Run the minutes and shugiintv harvests first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.ForComponent("relations")
		rels, err := relations.Build(shared.store, log)
		if err != nil {
			return err
		}
		path := filepath.Join(shared.store.Root(), "relations.json")
		if err := store.WriteJSON(path, rels); err != nil {
			return err
		}
		log.Info().Int("relations", len(rels)).Str("path", path).Msg("relation table saved")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(relationsCmd)
}
