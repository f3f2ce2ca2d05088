package cli

import (
	"time"

	"github.com/spf13/cobra"

	"jpdiet/kokkaiharvester/helpers"
	"jpdiet/kokkaiharvester/internal/source"
	"jpdiet/kokkaiharvester/internal/sync"
	"jpdiet/kokkaiharvester/logger"
)

var shugiintvFlags struct {
	from string
	to   string
	mode string
}

var shugiintvCmd = &cobra.Command{
	Use:   "shugiintv",
	Short: "Harvest Shugiin TV video session metadata",
	Long: "Walks the video index day by day, caching each session's detail " +
		"page and its parsed metadata. After the day range it re-fetches " +
		"numeric gaps in the cached ID sequence and purges empty pages.",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := sync.ParseVideoMode(shugiintvFlags.mode)
		if err != nil {
			return err
		}
		today := time.Now().Format("20060102")
		from, to := shugiintvFlags.from, shugiintvFlags.to
		if from == "" {
			from = today
		}
		if to == "" {
			to = today
		}
		days, err := helpers.DateRange(from, to)
		if err != nil {
			return err
		}

		job := &sync.VideoJob{
			Source:      source.NewShugiinTV(shared.client, shared.cfg.ShugiinTVBaseURL),
			Store:       shared.store,
			Log:         logger.ForSource("shugiintv"),
			ListDelay:   shared.cfg.ListDelay,
			DetailDelay: shared.cfg.DetailDelay,
			Mode:        mode,
		}
		summary, err := job.Run(cmd.Context(), days)
		if err != nil {
			return err
		}
		printSummary("shugiintv", summary)
		return nil
	},
}

func init() {
	shugiintvCmd.Flags().StringVar(&shugiintvFlags.from, "from", "", "first day to harvest (YYYYMMDD, default today)")
	shugiintvCmd.Flags().StringVar(&shugiintvFlags.to, "until", "", "last day to harvest (YYYYMMDD, default today)")
	shugiintvCmd.Flags().StringVar(&shugiintvFlags.mode, "mode", "auto", "cache reuse mode: auto, rebuild or refetch")
	rootCmd.AddCommand(shugiintvCmd)
}
