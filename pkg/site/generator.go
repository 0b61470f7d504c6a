package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Lonely-Student/StaticSite/pkg/config"
	"github.com/Lonely-Student/StaticSite/pkg/log"
)

var (
	ErrNoStaticDir  = errors.New("static directory does not exist")
	ErrUnsafeOutput = errors.New("output directory must be a subdirectory of the project")
)

const markdownExt = ".md"

// Page is a generated page
type Page struct {
	Source string // path of the markdown file inside the project
	Dest   string // path of the written HTML file
}

// Report summarizes a build
type Report struct {
	Pages   []Page
	Static  []string // copied files
	Elapsed time.Duration
}

// Generator reads the project from fsys and writes the site into the output directory
type Generator struct {
	fsys   fs.FS
	root   string // directory of fsys on disk
	cfg    config.Config
	output string // on disk
	outFS  string // output inside fsys, skipped by the walks
	log    log.Logger
}

// New creates a Generator. fsys must be the project directory located at root.
func New(fsys fs.FS, root string, cfg config.Config, logger log.Logger) *Generator {
	if logger == nil {
		logger = log.NewEmptyLog()
	}
	output := cfg.OutputDir
	if !filepath.IsAbs(output) {
		output = filepath.Join(root, output)
	}
	cfg.ContentDir = ProjectPath(root, cfg.ContentDir)
	cfg.StaticDir = ProjectPath(root, cfg.StaticDir)
	cfg.TemplatePath = ProjectPath(root, cfg.TemplatePath)
	return &Generator{fsys: fsys, root: root, cfg: cfg, output: output, outFS: ProjectPath(root, output), log: logger}
}

// ProjectPath converts a configured path, relative or absolute, into a path
// inside the fs.FS of the project located at root
func ProjectPath(root, p string) string {
	if filepath.IsAbs(p) {
		if rel, err := filepath.Rel(root, p); err == nil {
			p = rel
		}
	}
	return path.Clean(filepath.ToSlash(p))
}

// OutputDir returns the absolute or root-joined output directory
func (g *Generator) OutputDir() string { return g.output }

// OutputPath returns the output directory as a path inside the project fs.FS
func (g *Generator) OutputPath() string { return g.outFS }

// Sources returns the project paths a build reads: content, static and template
func (g *Generator) Sources() []string {
	return []string{g.cfg.ContentDir, g.cfg.StaticDir, g.cfg.TemplatePath}
}

func (g *Generator) isOutput(p string, d fs.DirEntry) bool {
	return d.IsDir() && p == g.outFS
}

func (g *Generator) checkOutput() error {
	rel, err := filepath.Rel(g.root, g.output)
	if err != nil {
		return err
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrUnsafeOutput, g.output)
	}
	return nil
}

// Build recreates the output directory from the static files and the content pages
func (g *Generator) Build() (Report, error) {
	start := time.Now()
	static, err := g.CopyStatic()
	if err != nil {
		return Report{}, err
	}
	pages, err := g.GeneratePages()
	if err != nil {
		return Report{}, err
	}
	return Report{Pages: pages, Static: static, Elapsed: time.Since(start)}, nil
}

// CopyStatic deletes the output directory and copies the static directory into it
func (g *Generator) CopyStatic() ([]string, error) {
	if err := g.checkOutput(); err != nil {
		return nil, err
	}
	if _, err := fs.Stat(g.fsys, g.cfg.StaticDir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoStaticDir, g.cfg.StaticDir)
		}
		return nil, err
	}

	if _, err := os.Stat(g.output); err == nil {
		g.log.Info("Deleting %s directory...", g.output)
		if err := os.RemoveAll(g.output); err != nil {
			return nil, err
		}
	}
	g.log.Info("Creating %s directory...", g.output)
	if err := os.MkdirAll(g.output, 0755); err != nil {
		return nil, err
	}

	copied := []string{}
	err := fs.WalkDir(g.fsys, g.cfg.StaticDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == g.cfg.StaticDir {
			return nil
		}
		if g.isOutput(p, d) {
			return fs.SkipDir
		}
		dst := filepath.Join(g.output, filepath.FromSlash(relPath(g.cfg.StaticDir, p)))
		if d.IsDir() {
			g.log.Info("Creating directory: %s", dst)
			return os.MkdirAll(dst, 0755)
		}
		g.log.Info("Copying file: %s -> %s", p, dst)
		if err := copyFile(g.fsys, p, dst); err != nil {
			return err
		}
		copied = append(copied, dst)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("copy static: %w", err)
	}
	return copied, nil
}

func copyFile(fsys fs.FS, src, dst string) error {
	data, err := fs.ReadFile(fsys, src)
	if err != nil {
		return err
	}
	return writeFile(dst, data)
}

var writeFile = func(absPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(absPath, data, 0644)
}

// relPath returns p relative to dir, both are slash separated fs.FS paths
func relPath(dir, p string) string {
	if dir == "." {
		return p
	}
	return strings.TrimPrefix(p, dir+"/")
}

func (g *Generator) excluded(rel string) bool {
	for _, pattern := range g.cfg.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func (g *Generator) readTemplate() (string, error) {
	data, err := fs.ReadFile(g.fsys, g.cfg.TemplatePath)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(data), nil
}

// GeneratePage converts the markdown file src (inside the project) into the HTML file dst
func (g *Generator) GeneratePage(src, dst string) error {
	template, err := g.readTemplate()
	if err != nil {
		return err
	}
	return g.generatePage(src, dst, template)
}

func (g *Generator) generatePage(src, dst, template string) error {
	g.log.Info("Generating page from %s to %s using %s", src, dst, g.cfg.TemplatePath)
	markdown, err := fs.ReadFile(g.fsys, src)
	if err != nil {
		return err
	}
	page, err := RenderPage(string(markdown), template, g.cfg.BasePath)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	return writeFile(dst, []byte(page))
}

// GeneratePages walks the content directory and generates a page for every
// markdown file. The directory structure is mirrored in the output directory.
func (g *Generator) GeneratePages() ([]Page, error) {
	template, err := g.readTemplate()
	if err != nil {
		return nil, err
	}

	pages := []Page{}
	err = fs.WalkDir(g.fsys, g.cfg.ContentDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if g.isOutput(p, d) {
			return fs.SkipDir
		}
		rel := relPath(g.cfg.ContentDir, p)
		if p == g.cfg.ContentDir {
			rel = "."
		} else if g.excluded(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		dst := filepath.Join(g.output, filepath.FromSlash(rel))
		if d.IsDir() {
			return os.MkdirAll(dst, 0755)
		}
		if !strings.HasSuffix(d.Name(), markdownExt) {
			return nil
		}

		dst = strings.TrimSuffix(dst, markdownExt) + ".html"
		if err := g.generatePage(p, dst, template); err != nil {
			return err
		}
		pages = append(pages, Page{Source: p, Dest: dst})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generate pages: %w", err)
	}
	return pages, nil
}
