package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/scaraplate/pkg/config"
	"github.com/arthur-debert/scaraplate/pkg/filesystem"
	"github.com/arthur-debert/scaraplate/pkg/logging"
	"github.com/arthur-debert/scaraplate/pkg/rollup"
	"github.com/arthur-debert/scaraplate/pkg/template"
)

func newRollupCmd(a *app) *cobra.Command {
	var (
		dryRun bool
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "rollup TEMPLATE_DIR TARGET_DIR",
		Short: MsgRollupShort,
		Long:  MsgRollupLong,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.rollup")
			templateDir, targetDir := args[0], args[1]

			opts := rollup.Options{
				Jobs:   a.settings.Rollup.Jobs,
				DryRun: a.settings.Rollup.DryRun || dryRun,
			}
			if cmd.Flags().Changed("jobs") {
				opts.Jobs = jobs
			}
			if opts.DryRun {
				opts.DiffOut = cmd.OutOrStdout()
			}

			fs := filesystem.NewOS()
			cfg, err := config.LoadTemplate(fs, templateDir)
			if err != nil {
				return err
			}
			meta, err := template.MetaFromGit(templateDir, cfg.GitRemoteType)
			if err != nil {
				return err
			}
			logger.Info().
				Str("commit", meta.CommitURL).
				Bool("dirty", meta.IsDirty).
				Msg("template metadata")

			report, err := rollup.New(fs, opts).Run(cmd.Context(), templateDir, targetDir, meta)
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, MsgFlagJobs)
	return cmd
}
