package cli

import (
	"github.com/spf13/cobra"

	"jpdiet/kokkaiharvester/internal/source"
	"jpdiet/kokkaiharvester/internal/sync"
	"jpdiet/kokkaiharvester/logger"
)

var qaFlags struct {
	session   int
	overwrite bool
	limit     int
}

var qaShuCmd = &cobra.Command{
	Use:   "qa-shu",
	Short: "Harvest House of Representatives written questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		src := source.NewQaShu(shared.client, shared.cfg.ShugiinBaseURL)
		return runQuestionJob(cmd, src)
	},
}

var qaSanCmd = &cobra.Command{
	Use:   "qa-san",
	Short: "Harvest House of Councillors written questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		src := source.NewQaSan(shared.client, shared.cfg.SangiinBaseURL)
		return runQuestionJob(cmd, src)
	},
}

func runQuestionJob(cmd *cobra.Command, src sync.QuestionSource) error {
	session, err := resolveSession(cmd.Context(), qaFlags.session)
	if err != nil {
		return err
	}
	job := &sync.QuestionJob{
		Source: src,
		Store:  shared.store,
		Log:    logger.ForSource(src.Name()),
		Delay:  shared.cfg.DetailDelay,
		Force:  qaFlags.overwrite,
		Limit:  qaFlags.limit,
	}
	summary, err := job.Run(cmd.Context(), session)
	if err != nil {
		return err
	}
	printSummary(src.Name(), summary)
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{qaShuCmd, qaSanCmd} {
		cmd.Flags().IntVar(&qaFlags.session, "session", 0, "Diet session number (default: newest in the calendar)")
		cmd.Flags().BoolVar(&qaFlags.overwrite, "overwrite", false, "refetch records whose status is already final")
		cmd.Flags().IntVar(&qaFlags.limit, "limit", 0, "stop after N questions (0 = no limit)")
		rootCmd.AddCommand(cmd)
	}
}
