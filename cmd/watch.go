package cmd

import (
	"io/fs"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Lonely-Student/StaticSite/cmd/watcher"
	"github.com/Lonely-Student/StaticSite/pkg/fswatcher"
	"github.com/Lonely-Student/StaticSite/pkg/log"
	"github.com/Lonely-Student/StaticSite/pkg/site"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [basepath]",
	Short: "Rebuild the site whenever content, static files or the template change",
	Long: `Rebuild the site whenever content, static files or the template change

Internally, watcher polls the filesystem, so keep the project small or
increase the interval.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig(cmd, args)
		if err != nil {
			return err
		}

		// the terminal belongs to the UI, so log records go to the file and the UI only
		var fileLog log.Logger = log.NewEmptyLog()
		if cfg.LogPath != "" {
			if fileLog, err = log.New(cfg.LogPath); err != nil {
				return err
			}
		}
		logger := log.NewChanLog(64, fileLog)
		defer logger.Close()

		g, root, err := newGenerator(cfg, logger)
		if err != nil {
			return err
		}
		w, err := newWatcher(os.DirFS(root), g)
		if err != nil {
			return err
		}

		p := tea.NewProgram(watcher.New(g, w, logger.Records(), watcher.Options{
			Root:     root,
			Interval: cfg.Interval,
		}))
		_, err = p.Run()
		return err
	},
}

// newWatcher watches the sources of g inside the project fsys.
// Paths come from the generator, so relative and absolute settings agree.
func newWatcher(fsys fs.FS, g *site.Generator) (fswatcher.FsWatcher, error) {
	w := fswatcher.NewFsPoller(fsys)
	w.AddShouldSkipHook(shouldSkip(g.OutputPath()))
	for _, p := range g.Sources() {
		if err := w.Add(p); err != nil {
			return nil, err
		}
	}
	return w, nil
}

var excludedDirs = map[string]bool{"node_modules": true}

// shouldSkip ignores hidden directories and the output, which changes on every build
func shouldSkip(output string) func(string, fs.FileInfo) bool {
	return func(name string, fi fs.FileInfo) bool {
		if name == output || strings.HasPrefix(name, output+"/") {
			return true
		}
		if !fi.IsDir() || name == "." {
			return false
		}
		return strings.HasPrefix(fi.Name(), ".") || excludedDirs[fi.Name()]
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationP("interval", "i", 500*time.Millisecond, "poll interval duration (e.g. 1s, 500ms...)")
}
