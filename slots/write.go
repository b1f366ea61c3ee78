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

package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/calcore/calcore/curated"
	"github.com/calcore/calcore/savestate"
)

// Save the slot to the store. A new id is created if the slot does not have
// one, and the creation time is set if it is zero. Saving a slot with an
// existing id replaces that slot.
//
// The padding at the end of the state blob is not stored. Returns the id of
// the slot.
func (s *Store) Save(ctx context.Context, slot Slot) (string, error) {
	if len(slot.Blob) == 0 {
		return "", curated.Errorf(EmptyBlob)
	}

	if slot.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("save slot: %w", err)
		}
		slot.ID = id.String()
	}

	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now()
	}

	blob := slot.Blob
	if t, ok := savestate.Trim(blob); ok {
		blob = t
	}

	version, _ := savestate.Peek(blob)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots
		(id, name, backend, rom_hash, version, created_at, blob)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		backend = excluded.backend,
		rom_hash = excluded.rom_hash,
		version = excluded.version,
		created_at = excluded.created_at,
		blob = excluded.blob
	`,
		slot.ID,
		slot.Name,
		slot.Backend,
		slot.ROMHash,
		int64(version),
		slot.CreatedAt.UnixMilli(),
		blob,
	)
	if err != nil {
		return "", fmt.Errorf("save slot: %w", err)
	}

	return slot.ID, nil
}

// Delete the slot with the id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM slots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if n == 0 {
		return curated.Errorf(NotFound, id)
	}
	return nil
}
