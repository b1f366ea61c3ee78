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

package statsview

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Address is the default address of the statistics server.
const Address = "localhost:12600"

const url = "/debug/statsview"

var launched sync.Once

// URL returns the address at which the statistics can be viewed.
func URL(addr string) string {
	return fmt.Sprintf("http://%s%s", addr, url)
}

// Launch a new goroutine running the statsview. Only the first call has any
// effect. An empty address means the default address.
func Launch(output io.Writer, addr string) {
	if addr == "" {
		addr = Address
	}
	launched.Do(func() {
		go func() {
			viewer.SetConfiguration(viewer.WithAddr(addr))
			mgr := statsview.New()
			mgr.Start()
		}()
		fmt.Fprintf(output, "stats server available at %s\n", URL(addr))
	})
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return true
}
