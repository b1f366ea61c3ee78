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

	"github.com/calcore/calcore/slots"
)

func newSlotsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Manage saved state slots",
	}
	cmd.AddCommand(newSlotsListCommand(opts))
	cmd.AddCommand(newSlotsDeleteCommand(opts))
	return cmd
}

func openSlots(opts *RootOptions) (*slots.Store, error) {
	pth, err := opts.slotsPath()
	if err != nil {
		return nil, err
	}
	return slots.Open(pth)
}

func newSlotsListCommand(opts *RootOptions) *cobra.Command {
	var romFile string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var hash string
			if romFile != "" {
				rom, err := os.ReadFile(romFile)
				if err != nil {
					return err
				}
				hash = slots.ROMHash(rom)
			}

			store, err := openSlots(opts)
			if err != nil {
				return err
			}
			defer store.Close()

			l, err := store.List(cmd.Context(), hash)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(l) == 0 {
				fmt.Fprintln(w, "no slots")
				return nil
			}
			for _, s := range l {
				fmt.Fprintln(w, s.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&romFile, "rom", "", "only list slots for this ROM image")

	return cmd
}

func newSlotsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openSlots(opts)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted: %s\n", args[0])
			return nil
		},
	}
}
