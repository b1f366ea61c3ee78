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

package slots_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calcore/calcore/curated"
	"github.com/calcore/calcore/engines/ce"
	"github.com/calcore/calcore/hardware/testrom"
	"github.com/calcore/calcore/savestate"
	"github.com/calcore/calcore/slots"
)

func openStore(t *testing.T) *slots.Store {
	t.Helper()
	s, err := slots.Open(filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// a state blob with padding, as produced by an engine
func blob(t *testing.T, value uint8) []byte {
	t.Helper()
	b := make([]byte, 64)
	_, err := savestate.Encode(b, func(w *savestate.Writer) {
		w.Uint8(value)
	})
	require.NoError(t, err)
	return b
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.db")
	ctx := context.Background()

	s1, err := slots.Open(path)
	require.NoError(t, err)
	_, err = s1.Save(ctx, slots.Slot{Name: "a", Backend: "ce", Blob: blob(t, 1)})
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := slots.Open(path)
	require.NoError(t, err)
	defer s2.Close()

	n, err := s2.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSaveAndLoad(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	b := blob(t, 0x42)
	created := time.UnixMilli(1700000000123)

	id, err := s.Save(ctx, slots.Slot{
		Name:      "level 3",
		Backend:   "ce",
		ROMHash:   slots.ROMHash([]byte{1, 2, 3}),
		CreatedAt: created,
		Blob:      b,
	})
	require.NoError(t, err)

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	slot, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, slot.ID)
	assert.Equal(t, "level 3", slot.Name)
	assert.Equal(t, "ce", slot.Backend)
	assert.Equal(t, slots.ROMHash([]byte{1, 2, 3}), slot.ROMHash)
	assert.Equal(t, savestate.Version, slot.Version)
	assert.True(t, created.Equal(slot.CreatedAt))

	// the padding is not stored but the blob decodes the same
	trimmed, ok := savestate.Trim(b)
	require.True(t, ok)
	assert.Equal(t, trimmed, slot.Blob)
	assert.Equal(t, len(trimmed), slot.Size)

	var v uint8
	require.NoError(t, savestate.Decode(slot.Blob, func(r *savestate.Reader) error {
		v = r.Uint8()
		return nil
	}))
	assert.Equal(t, uint8(0x42), v)
}

func TestSaveReplaces(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, slots.Slot{Name: "first", Backend: "ce", Blob: blob(t, 1)})
	require.NoError(t, err)

	_, err = s.Save(ctx, slots.Slot{ID: id, Name: "second", Backend: "ce", Blob: blob(t, 2)})
	require.NoError(t, err)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	slot, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "second", slot.Name)
}

func TestEmptyBlob(t *testing.T) {
	s := openStore(t)
	_, err := s.Save(context.Background(), slots.Slot{Name: "empty", Backend: "ce"})
	assert.True(t, curated.Is(err, slots.EmptyBlob))
}

func TestLoadFor(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, slots.Slot{Name: "a", Backend: "ce", Blob: blob(t, 1)})
	require.NoError(t, err)

	_, err = s.LoadFor(ctx, id, "ce")
	assert.NoError(t, err)

	_, err = s.LoadFor(ctx, id, "other")
	assert.True(t, curated.Is(err, slots.WrongBackend))
	assert.Contains(t, err.Error(), "created by backend ce")

	_, err = s.LoadFor(ctx, "missing", "ce")
	assert.True(t, curated.Is(err, slots.NotFound))
}

func TestList(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	slots0, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, slots0)
	assert.Empty(t, slots0)

	base := time.UnixMilli(1700000000000)
	_, err = s.Save(ctx, slots.Slot{Name: "b", Backend: "ce", ROMHash: "rom1", CreatedAt: base.Add(2 * time.Second), Blob: blob(t, 1)})
	require.NoError(t, err)
	_, err = s.Save(ctx, slots.Slot{Name: "a", Backend: "ce", ROMHash: "rom1", CreatedAt: base.Add(time.Second), Blob: blob(t, 2)})
	require.NoError(t, err)
	_, err = s.Save(ctx, slots.Slot{Name: "c", Backend: "ce", ROMHash: "rom2", CreatedAt: base, Blob: blob(t, 3)})
	require.NoError(t, err)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{all[0].Name, all[1].Name, all[2].Name})

	rom1, err := s.List(ctx, "rom1")
	require.NoError(t, err)
	require.Len(t, rom1, 2)
	assert.Equal(t, "a", rom1[0].Name)
	assert.Nil(t, rom1[0].Blob)
	assert.Positive(t, rom1[0].Size)
}

func TestDelete(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, slots.Slot{Name: "a", Backend: "ce", Blob: blob(t, 1)})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))
	assert.True(t, curated.Is(s.Delete(ctx, id), slots.NotFound))

	_, err = s.Load(ctx, id)
	assert.True(t, curated.Is(err, slots.NotFound))
}

func TestEngineState(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	rom := testrom.Build(testrom.Timer)
	eng := ce.NewEngine(nil)
	require.NoError(t, eng.LoadROM(rom))
	eng.RunCycles(200000)

	state := make([]byte, eng.SaveStateSize())
	_, err := eng.SaveState(state)
	require.NoError(t, err)

	id, err := s.Save(ctx, slots.Slot{Name: "timer", Backend: eng.Name(), ROMHash: slots.ROMHash(rom), Blob: state})
	require.NoError(t, err)

	// the stored state is much smaller than the engine's fixed state size
	slot, err := s.LoadFor(ctx, id, ce.Name)
	require.NoError(t, err)
	assert.Less(t, slot.Size, ce.StateSize)

	// and can be loaded into a new engine
	other := ce.NewEngine(nil)
	require.NoError(t, other.LoadROM(rom))
	require.NoError(t, other.LoadState(slot.Blob))
	assert.Equal(t, eng.Calc().CPU.Cycles, other.Calc().CPU.Cycles)
	assert.Equal(t, eng.Calc().Mem.RAM[0], other.Calc().Mem.RAM[0])
}
