package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"jpdiet/kokkaiharvester/internal/record"
	"jpdiet/kokkaiharvester/internal/source"
	"jpdiet/kokkaiharvester/internal/store"
	"jpdiet/kokkaiharvester/logger"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Harvest the Diet session calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.ForSource("session")
		src := source.NewSessions(shared.client, shared.cfg.SessionListURL)

		entries, err := src.FetchAll(cmd.Context())
		if err != nil {
			return err
		}
		if err := store.WriteJSON(sessionFilePath(), entries); err != nil {
			return err
		}
		log.Info().Int("sessions", len(entries)).
			Int("latest", source.LatestSession(entries)).
			Msg("session calendar saved")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func sessionFilePath() string {
	return filepath.Join(shared.store.Space("session").Dir(), "session.json")
}

// resolveSession returns the session to harvest: the flag value when given,
// otherwise the newest session in the cached calendar, fetching the calendar
// first when the cache is empty
func resolveSession(ctx context.Context, flag int) (int, error) {
	if flag > 0 {
		return flag, nil
	}
	var entries []record.SessionEntry
	if err := store.ReadJSON(sessionFilePath(), &entries); err != nil {
		src := source.NewSessions(shared.client, shared.cfg.SessionListURL)
		entries, err = src.FetchAll(ctx)
		if err != nil {
			return 0, fmt.Errorf("resolve latest session: %w", err)
		}
		if err := store.WriteJSON(sessionFilePath(), entries); err != nil {
			return 0, err
		}
	}
	latest := source.LatestSession(entries)
	if latest == 0 {
		return 0, fmt.Errorf("session calendar is empty; pass --session explicitly")
	}
	return latest, nil
}
