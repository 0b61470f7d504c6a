package cmd

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/Lonely-Student/StaticSite/pkg/log"
)

var checkCmd = &cobra.Command{
	Use:   "check [basepath]",
	Short: "Report links of the generated site that point to missing files",
	Long: `Report links of the generated site that point to missing files

Every <a href> and <img src> of the HTML pages in the output directory that
starts with the base path or is relative is resolved inside the output directory.
External links are not checked.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig(cmd, args)
		if err != nil {
			return err
		}
		g, _, err := newGenerator(cfg, log.NewEmptyLog())
		if err != nil {
			return err
		}
		broken, err := g.CheckOutput()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(broken) == 0 {
			fmt.Fprintf(out, "%s no broken links in %s\n", color.Green.Sprint("✓"), g.OutputDir())
			return nil
		}
		for _, b := range broken {
			fmt.Fprintf(out, " - %s %s %s\n", color.Cyan.Sprint(b.Page), b.Tag, color.Red.Sprint(b.Target))
		}
		return fmt.Errorf("%d broken links", len(broken))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
