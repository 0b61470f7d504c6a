package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Lonely-Student/StaticSite/pkg/config"
	"github.com/Lonely-Student/StaticSite/pkg/log"
	"github.com/Lonely-Student/StaticSite/pkg/site"
)

func getConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return cfg, err
	}
	if len(args) > 0 {
		cfg.BasePath = config.NormalizeBasePath(args[0])
	}
	return cfg, nil
}

func newGenerator(cfg config.Config, logger log.Logger) (*site.Generator, string, error) {
	root, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}
	return site.New(os.DirFS(root), root, cfg, logger), root, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "staticsite [basepath]",
	Short: "Generate a static web site from markdown files",
	Long: `Generate a static web site from markdown files

Launch the program in the project directory. The static directory is copied
into the output directory, then every markdown file of the content directory
is converted to HTML and inserted into the template in place of {{ Content }}.
The first "# " heading replaces {{ Title }}.

basepath replaces the leading "/" of href and src attributes, e.g. "/repo/"
for a site hosted at https://user.github.io/repo/.

Settings can be stored in site.yaml, passed as STATICSITE_* environment variables, or set with flags.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig(cmd, args)
		if err != nil {
			return err
		}
		logger, err := log.New(cfg.LogPath)
		if err != nil {
			return err
		}
		defer logger.Close()

		logger.Info("Starting static site generator with basepath: %s", cfg.BasePath)
		g, _, err := newGenerator(cfg, logger)
		if err != nil {
			return err
		}
		report, err := g.Build()
		if err != nil {
			logger.Error("%s", err)
			return err
		}
		logger.Info("Site generation complete! %d pages, %d static files in %s", len(report.Pages), len(report.Static), report.Elapsed)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(version string) {
	rootCmd.Version = version
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	defaults := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is ./site.yaml if present)")
	flags.String("content", defaults.ContentDir, "directory with markdown pages")
	flags.String("static", defaults.StaticDir, "directory with static assets")
	flags.StringP("template", "t", defaults.TemplatePath, "HTML template of a page")
	flags.StringP("output", "o", defaults.OutputDir, "output directory, deleted on every build")
	flags.String("basepath", defaults.BasePath, "prefix of root-relative links")
	flags.StringSlice("exclude", nil, "glob patterns of content paths to skip (e.g. 'drafts/**')")
	flags.StringP("log", "l", "", "path to the log file")
}
