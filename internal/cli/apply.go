package cli

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/scaraplate/pkg/errors"
	"github.com/arthur-debert/scaraplate/pkg/strategies"
	"github.com/arthur-debert/scaraplate/pkg/template"
)

func newApplyCmd() *cobra.Command {
	var (
		templateFile string
		targetFile   string
		commitURL    string
		dirty        bool
		set          []string
	)

	cmd := &cobra.Command{
		Use:   "apply STRATEGY --template FILE [--target FILE]",
		Short: MsgApplyShort,
		Long:  MsgApplyLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategyConfig, err := parseSet(set)
			if err != nil {
				return err
			}
			s, err := strategies.New(args[0], strategyConfig)
			if err != nil {
				return err
			}

			tmpl, err := os.ReadFile(templateFile)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileRead, "cannot read template file %s", templateFile)
			}
			in := strategies.Input{
				Template: bytes.NewReader(tmpl),
				Meta:     template.Meta{CommitURL: commitURL, IsDirty: dirty},
			}

			if targetFile != "" {
				target, err := os.ReadFile(targetFile)
				switch {
				case err == nil:
					in.Target = bytes.NewReader(target)
				case !os.IsNotExist(err):
					return errors.Wrapf(err, errors.ErrFileRead, "cannot read target file %s", targetFile)
				}
			}

			out, err := s.Apply(in)
			if err != nil {
				return err
			}
			_, err = io.Copy(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&templateFile, "template", "", MsgFlagTemplate)
	cmd.Flags().StringVar(&targetFile, "target", "", MsgFlagTarget)
	cmd.Flags().StringVar(&commitURL, "commit-url", "", MsgFlagCommitURL)
	cmd.Flags().BoolVar(&dirty, "dirty", false, MsgFlagDirty)
	cmd.Flags().StringArrayVar(&set, "set", nil, MsgFlagSet)
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

// parseSet turns repeated key=value flags into a strategy config.
func parseSet(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	cfg := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "--set expects key=value, got %q", pair)
		}
		cfg[key] = value
	}
	return cfg, nil
}

func strategyNames() []string {
	return strategies.Names()
}
