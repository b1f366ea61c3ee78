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

	"github.com/calcore/calcore/hardware/device"
	"github.com/calcore/calcore/logger"
)

func newDetectCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <rom>",
		Short: "Identify the device a ROM image was made for",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			// detection gets its own log so that only its messages are shown
			log := logger.NewLogger(logger.DefaultCapacity)
			res := device.Detect(rom, log)

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, res.String())
			for _, e := range log.Entries() {
				fmt.Fprintf(w, "\t%s\n", e)
			}
			return nil
		},
	}
}
