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

	"github.com/calcore/calcore/tifile"
)

func newVarinfoCommand(_ *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "varinfo <file>",
		Short: "List the variables in a calculator variable file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			f, err := tifile.Parse(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			w := cmd.OutOrStdout()
			if f.Comment != "" {
				fmt.Fprintf(w, "comment: %s\n", f.Comment)
			}
			for _, e := range f.Entries {
				fmt.Fprintln(w, e.String())
			}
			return nil
		},
	}
}
