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
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/calcore/calcore/paths"
	"github.com/calcore/calcore/performance"
)

func newPerfCommand(opts *RootOptions) *cobra.Command {
	var duration time.Duration
	var leadtime time.Duration
	var profile string
	var profileDir string

	cmd := &cobra.Command{
		Use:   "perf <rom>",
		Short: "Measure the emulation speed of a ROM image",
		Long: `Run a ROM image as quickly as possible and report the number of frames
per second. The accuracy is relative to the 60Hz refresh rate of the
calculator display.

Profiles are written to the profile directory, named after the ROM file
and the time of the measurement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := performance.ParseProfile(profile)
			if err != nil {
				return err
			}

			eng, _, err := opts.engine(args[0])
			if err != nil {
				return err
			}
			defer eng.Destroy()

			eng.PowerOn()

			_, err = performance.Check(cmd.Context(), cmd.OutOrStdout(), eng, performance.Options{
				CyclesPerFrame: opts.Preferences.CyclesPerFrame.Get().(int),
				Leadtime:       leadtime,
				Duration:       duration,
				Profile:        p,
				FilenameHeader: filepath.Join(profileDir, paths.UniqueFilename("perf", args[0])),
			})
			return err
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 5*time.Second, "length of the measurement")
	cmd.Flags().DurationVar(&leadtime, "leadtime", 2*time.Second, "time to run before measuring")
	cmd.Flags().StringVar(&profile, "profile", "none", "profiles to create (cpu, mem, trace, all)")
	cmd.Flags().StringVar(&profileDir, "profile-dir", ".", "directory for profile files")

	return cmd
}
