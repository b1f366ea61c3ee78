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

package bridge_test

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/calcore/calcore/backend"
	"github.com/calcore/calcore/bridge"
	"github.com/calcore/calcore/engines/ce"
	"github.com/calcore/calcore/hardware/testrom"
	"github.com/calcore/calcore/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTwice(t *testing.T) {
	br := bridge.NewBridge(nil, nil)

	h := br.Create()
	require.NotZero(t, h)

	// second create fails without side effects
	assert.Zero(t, br.Create())
	assert.Equal(t, backend.StatusOK, br.LoadROM(h, testrom.Build(testrom.Spin)))

	logs := br.DrainLogs()
	require.NotEmpty(t, logs)
	assert.Equal(t, "bridge: backend: an engine instance is already live", logs[0])

	// a new engine can be created after the live one is destroyed. the
	// old handle is no longer valid
	br.Destroy(h)
	h2 := br.Create()
	require.NotZero(t, h2)
	assert.NotEqual(t, h, h2)
	assert.Equal(t, backend.StatusInvalidHandle, br.LoadROM(h, testrom.Build(testrom.Spin)))
	br.Destroy(h2)
}

func TestInvalidHandle(t *testing.T) {
	br := bridge.NewBridge(nil, nil)

	assert.Equal(t, backend.StatusInvalidHandle, br.LoadROM(0, []byte{0x00}))
	assert.Equal(t, 0, br.RunCycles(0, 1000))
	assert.Equal(t, backend.StatusInvalidHandle, br.SaveState(0, make([]byte, 16)))
	assert.Equal(t, backend.StatusInvalidHandle, br.LoadState(0, make([]byte, 16)))
	assert.Equal(t, 0, br.SaveStateSize(0))
	assert.Equal(t, uint8(0), br.BacklightLevel(0))
	assert.False(t, br.IsDisplayOn(0))
	assert.Equal(t, int(backend.StopNone), br.LastStop(0))

	px, w, h := br.Framebuffer(99)
	assert.Nil(t, px)
	assert.Equal(t, backend.ScreenWidth, w)
	assert.Equal(t, backend.ScreenHeight, h)

	// quiet no-ops
	br.Reset(99)
	br.PowerOn(99)
	br.SetKey(99, 0, 0, true)
	br.Destroy(99)
}

func TestLifecycle(t *testing.T) {
	br := bridge.NewBridge(nil, nil)
	h := br.Create()
	require.NotZero(t, h)
	defer br.Destroy(h)

	assert.Equal(t, backend.StatusEmptyInput, br.LoadROM(h, nil))
	assert.Equal(t, backend.StatusTooLarge, br.LoadROM(h, make([]byte, 4*1024*1024+1)))
	assert.Equal(t, 0, br.RunCycles(h, 1000))
	assert.Equal(t, backend.StatusNotInitialised, br.CopyFramebuffer(h, make([]uint32, 10)))

	require.Equal(t, backend.StatusOK, br.LoadROM(h, testrom.Build(testrom.Display)))
	assert.Equal(t, 1000, br.RunCycles(h, 1000))
	assert.Equal(t, int(backend.StopBudget), br.LastStop(h))
	assert.True(t, br.IsDisplayOn(h))
	assert.Equal(t, uint8(0xff), br.BacklightLevel(h))

	px, w, ht := br.Framebuffer(h)
	assert.Len(t, px, w*ht)

	out := make([]uint32, w*ht)
	assert.Equal(t, backend.StatusBufferTooSmall, br.CopyFramebuffer(h, out[:10]))
	assert.Equal(t, w*ht, br.CopyFramebuffer(h, out))
	assert.Equal(t, px, out)
}

func TestFramebufferOwnership(t *testing.T) {
	br := bridge.NewBridge(nil, nil)
	h := br.Create()
	require.NotZero(t, h)
	defer br.Destroy(h)

	require.Equal(t, backend.StatusOK, br.LoadROM(h, testrom.Build(testrom.Display)))
	br.RunCycles(h, 1000)

	before, _, _ := br.Framebuffer(h)
	kept := slices.Clone(before)

	// the program keeps changing video memory. pixels already returned to
	// the host must not change with it
	br.RunCycles(h, 100000)
	after, _, _ := br.Framebuffer(h)
	assert.Equal(t, kept, before)
	assert.NotEqual(t, before, after)
}

func TestState(t *testing.T) {
	br := bridge.NewBridge(nil, nil)
	h := br.Create()
	require.NotZero(t, h)
	defer br.Destroy(h)

	assert.Equal(t, backend.StatusNotInitialised, br.SaveState(h, make([]byte, 16)))
	assert.Equal(t, backend.StatusNotInitialised, br.LoadState(h, make([]byte, 16)))

	require.Equal(t, backend.StatusOK, br.LoadROM(h, testrom.Build(testrom.Timer)))
	br.RunCycles(h, 100000)

	size := br.SaveStateSize(h)
	require.Equal(t, ce.StateSize, size)
	assert.Equal(t, backend.StatusBufferTooSmall, br.SaveState(h, make([]byte, size-1)))

	blob := make([]byte, size)
	require.Equal(t, size, br.SaveState(h, blob))

	assert.Equal(t, backend.StatusDataCorruption, br.LoadState(h, blob[:4]))

	version := append([]byte(nil), blob...)
	version[3] = 0x00
	assert.Equal(t, backend.StatusVersionMismatch, br.LoadState(h, version))

	br.RunCycles(h, 100000)
	after := make([]byte, size)
	require.Equal(t, size, br.SaveState(h, after))
	assert.NotEqual(t, blob, after)

	require.Equal(t, backend.StatusOK, br.LoadState(h, blob))
	again := make([]byte, size)
	require.Equal(t, size, br.SaveState(h, again))
	assert.Equal(t, blob, again)
}

func TestBackendSelection(t *testing.T) {
	reg := backend.NewRegistry()
	require.NoError(t, reg.Register("ce", ce.Factory))
	require.NoError(t, reg.Register("broken", func(_ logger.Sink) (backend.Engine, error) {
		return nil, errors.New("broken: no engine")
	}))

	br := bridge.NewBridge(reg, nil)
	assert.Equal(t, []string{"broken", "ce"}, br.Available())
	assert.Equal(t, 2, br.Count())
	assert.Equal(t, "ce", br.Current())

	assert.Equal(t, backend.StatusUnknownBackend, br.SetBackend("nonexistent"))
	assert.Equal(t, "ce", br.Current())

	require.Equal(t, backend.StatusOK, br.SetBackend("broken"))
	assert.Zero(t, br.Create())
	assert.Contains(t, br.DrainLogs(), "bridge: broken: no engine")

	require.Equal(t, backend.StatusOK, br.SetBackend("ce"))
	h := br.Create()
	require.NotZero(t, h)

	// can't change backend with a live engine
	assert.Equal(t, backend.StatusAlreadyLive, br.SetBackend("broken"))
	br.Destroy(h)
	assert.Equal(t, backend.StatusOK, br.SetBackend("broken"))
}

func TestConcurrentDrain(t *testing.T) {
	log := logger.NewLogger(10)
	br := bridge.NewBridge(nil, log)
	h := br.Create()
	require.NotZero(t, h)
	defer br.Destroy(h)

	require.Equal(t, backend.StatusOK, br.LoadROM(h, testrom.Build(testrom.Spin)))

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for range 100 {
			br.SetKey(h, 9, 9, true)
			br.RunCycles(h, 100)
		}
	}()

	drained := 0
	go func() {
		defer wg.Done()
		for range 100 {
			drained += len(br.DrainLogs())
		}
	}()

	wg.Wait()
	drained += len(br.DrainLogs())

	// every out of range key is logged once. some may have been evicted
	assert.LessOrEqual(t, drained, 100+2)
	assert.Zero(t, log.Len())
}
