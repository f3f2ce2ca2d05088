package cli

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"jpdiet/kokkaiharvester/internal/source"
	"jpdiet/kokkaiharvester/internal/sync"
	"jpdiet/kokkaiharvester/logger"
)

var minutesFlags struct {
	any         string
	meeting     string
	speaker     string
	from        string
	until       string
	sessionFrom int
	sessionTo   int
	limit       int
	overwrite   bool
}

var minutesCmd = &cobra.Command{
	Use:   "minutes",
	Short: "Harvest meeting records from the Diet minutes search API",
	Long: "Searches the minutes API with the given filters and caches each " +
		"matching meeting record under its issue ID. Without filters the " +
		"search window runs from the newest cached meeting date through today.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.ForSource("minutes_api")
		api := source.NewMinutes(shared.client, shared.cfg.MinutesAPIURL, shared.cfg.ListDelay)
		job := &sync.MinutesJob{
			API:       api,
			Store:     shared.store,
			Log:       log,
			Delay:     shared.cfg.DetailDelay,
			Overwrite: minutesFlags.overwrite,
			Limit:     minutesFlags.limit,
		}

		params := map[string]string{}
		if minutesFlags.any != "" {
			params["any"] = minutesFlags.any
		}
		if minutesFlags.meeting != "" {
			params["nameOfMeeting"] = minutesFlags.meeting
		}
		if minutesFlags.speaker != "" {
			params["speaker"] = minutesFlags.speaker
		}
		if minutesFlags.from != "" {
			params["from"] = minutesFlags.from
		}
		if minutesFlags.until != "" {
			params["until"] = minutesFlags.until
		}
		if minutesFlags.sessionFrom > 0 {
			params["sessionFrom"] = strconv.Itoa(minutesFlags.sessionFrom)
		}
		if minutesFlags.sessionTo > 0 {
			params["sessionTo"] = strconv.Itoa(minutesFlags.sessionTo)
		}
		if len(params) == 0 {
			from, until := job.DefaultDateRange(time.Now())
			params["from"] = from
			params["until"] = until
			log.Info().Str("from", from).Str("until", until).Msg("no filters given, using incremental window")
		}

		summary, err := job.Run(cmd.Context(), params)
		if err != nil {
			return err
		}
		printSummary("minutes_api", summary)
		return nil
	},
}

func init() {
	minutesCmd.Flags().StringVar(&minutesFlags.any, "any", "", "full-text search term")
	minutesCmd.Flags().StringVar(&minutesFlags.meeting, "meeting", "", "meeting name filter")
	minutesCmd.Flags().StringVar(&minutesFlags.speaker, "speaker", "", "speaker name filter")
	minutesCmd.Flags().StringVar(&minutesFlags.from, "from", "", "start date (YYYY-MM-DD)")
	minutesCmd.Flags().StringVar(&minutesFlags.until, "until", "", "end date (YYYY-MM-DD)")
	minutesCmd.Flags().IntVar(&minutesFlags.sessionFrom, "session-from", 0, "first session number")
	minutesCmd.Flags().IntVar(&minutesFlags.sessionTo, "session-to", 0, "last session number")
	minutesCmd.Flags().IntVar(&minutesFlags.limit, "limit", 0, "stop after N issue IDs (0 = no limit)")
	minutesCmd.Flags().BoolVar(&minutesFlags.overwrite, "overwrite", false, "re-download records that are already cached")
	rootCmd.AddCommand(minutesCmd)
}
