// This file is part of calcore.
//
// calcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// calcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with calcore.  If not, see <https://www.gnu.org/licenses/>.

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/curated"
	"github.com/calcore/calcore/engines"
	"github.com/calcore/calcore/logger"
	"github.com/calcore/calcore/paths"
	"github.com/calcore/calcore/prefs"
	"github.com/calcore/calcore/statsview"
	"github.com/calcore/calcore/version"
)

// RootOptions holds global flags for all commands and the values prepared
// from them before a command is run.
type RootOptions struct {
	Backend   string
	Config    string
	Prefs     string
	Verbose   bool
	Statsview bool

	// the registry of backends. the default registry is used if this is nil
	Registry *backend.Registry

	// prepared by the root command before any sub-command is run
	Preferences *Preferences
	Log         *logger.Logger
}

// NewRootCommand creates the root command for the calcore command line tool.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "calcore",
		Short:         "calcore - TI-84 Plus CE emulation core",
		Long:          "Emulation core for the TI-84 Plus CE family of graphing calculators.",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.prepare(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "emulation backend to use (see backends command)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path of preferences file")
	cmd.PersistentFlags().StringVar(&opts.Prefs, "prefs", "", "preference overrides (key::value; key::value)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "echo log entries to stderr")
	cmd.PersistentFlags().BoolVar(&opts.Statsview, "statsview", false, fmt.Sprintf("run stats server (%s)", statsview.URL(statsview.Address)))

	cmd.AddCommand(newBackendsCommand(opts))
	cmd.AddCommand(newDetectCommand(opts))
	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newSlotsCommand(opts))
	cmd.AddCommand(newVarinfoCommand(opts))
	cmd.AddCommand(newInspectCommand(opts))
	cmd.AddCommand(newPlayCommand(opts))
	cmd.AddCommand(newPerfCommand(opts))
	cmd.AddCommand(newVersionCommand(opts))

	return cmd
}

// prepare the preferences, the log and the backend selection
func (opts *RootOptions) prepare(cmd *cobra.Command) error {
	if opts.Registry == nil {
		opts.Registry = engines.Default()
	}

	pth := opts.Config
	if pth == "" {
		var err error
		pth, err = paths.ResourcePath("", prefs.DefaultPrefsFile)
		if err != nil {
			return err
		}
		opts.Config = pth
	}

	prefs.PushCommandLineStack(opts.Prefs)
	p, err := newPreferences(pth, opts.Registry.Default())
	unused := prefs.PopCommandLineStack()
	if err != nil {
		return err
	}
	opts.Preferences = p

	// the command line flags take priority over the preferences
	if !cmd.Flags().Changed("verbose") {
		opts.Verbose = p.Verbose.Get().(bool)
	}
	if !cmd.Flags().Changed("backend") {
		opts.Backend = p.Backend.String()
	}

	opts.Log = logger.NewLogger(p.LogCapacity.Get().(int))
	if opts.Verbose {
		opts.Log.SetEcho(cmd.ErrOrStderr())
	}
	if unused != "" {
		opts.Log.Logf(logger.Allow, "prefs", "unused preferences: %s", unused)
	}

	if !opts.Registry.Has(opts.Backend) {
		return curated.Errorf(backend.UnknownBackend, opts.Backend)
	}

	if opts.Statsview {
		statsview.Launch(cmd.ErrOrStderr(), "")
	}

	return nil
}

// create an engine for the selected backend and load the ROM file into it
func (opts *RootOptions) engine(romFile string) (backend.Engine, []byte, error) {
	rom, err := os.ReadFile(romFile)
	if err != nil {
		return nil, nil, err
	}

	eng, err := opts.Registry.Create(opts.Backend, opts.Log)
	if err != nil {
		return nil, nil, err
	}

	if err := eng.LoadROM(rom); err != nil {
		eng.Destroy()
		return nil, nil, fmt.Errorf("%s: %w", romFile, err)
	}

	return eng, rom, nil
}

// the path of the slots database
func (opts *RootOptions) slotsPath() (string, error) {
	if p := opts.Preferences.SlotsDB.String(); p != "" {
		return p, nil
	}
	return paths.ResourcePath("", "slots.db")
}
