package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/labelwires/pkg/config"
	"github.com/arthur-debert/labelwires/pkg/datastore"
	"github.com/arthur-debert/labelwires/pkg/filesystem"
	"github.com/arthur-debert/labelwires/pkg/paths"
	"github.com/arthur-debert/labelwires/pkg/registry"
	"github.com/arthur-debert/labelwires/pkg/style"
	"github.com/arthur-debert/labelwires/pkg/types"
)

// app carries global flags and the lazily built settings and registry
// shared by every command of one invocation.
type app struct {
	verbosity  int
	configPath string
	filePath   string
	format     string

	fs       types.FS
	paths    paths.Paths
	settings *config.Settings
	reg      *registry.Registry
}

func newApp() *app {
	return &app{fs: filesystem.NewOS()}
}

// loadSettings reads settings once per invocation.
func (a *app) loadSettings() (*config.Settings, error) {
	if a.settings != nil {
		return a.settings, nil
	}
	if a.paths == nil {
		a.paths = paths.New()
	}
	s, err := config.Load(a.paths, a.configPath)
	if err != nil {
		return nil, err
	}
	a.settings = s
	return s, nil
}

// connectionsPath is the --file flag or connections.json in the save
// location.
func (a *app) connectionsPath() (string, error) {
	if a.filePath != "" {
		return paths.ExpandHome(a.filePath), nil
	}
	s, err := a.loadSettings()
	if err != nil {
		return "", err
	}
	return filepath.Join(s.DefaultSaveLocation, paths.ConnectionsFileName), nil
}

// registry opens the connection file. A missing file starts an empty list.
func (a *app) registry() (*registry.Registry, error) {
	if a.reg != nil {
		return a.reg, nil
	}
	s, err := a.loadSettings()
	if err != nil {
		return nil, err
	}
	path, err := a.connectionsPath()
	if err != nil {
		return nil, err
	}

	opts := registry.Options{
		OutputPath: path,
		Store:      datastore.New(a.fs),
		Settings:   s,
	}
	if _, err := a.fs.Stat(path); err == nil {
		opts.SourcePath = path
	}

	reg, err := registry.New(opts)
	if err != nil {
		return nil, err
	}
	a.reg = reg
	return reg, nil
}

// renderer picks the output renderer for cmd's output stream.
func (a *app) renderer(cmd *cobra.Command) (style.Renderer, error) {
	f, err := style.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	if f == style.FormatAuto {
		f = style.FormatText
		if out, ok := cmd.OutOrStdout().(*os.File); ok {
			f = style.DetectFormat(out)
		}
	}
	return style.NewRenderer(f), nil
}

func printMessage(w io.Writer, r style.Renderer, format string, args ...interface{}) {
	fmt.Fprint(w, r.RenderMessage(fmt.Sprintf(format, args...)))
}
