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
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/calcore/calcore/curated"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanSlot(row scanner, withBlob bool) (Slot, error) {
	var slot Slot
	var version int64
	var created int64

	dest := []any{&slot.ID, &slot.Name, &slot.Backend, &slot.ROMHash, &version, &created, &slot.Size}
	if withBlob {
		dest = append(dest, &slot.Blob)
	}

	if err := row.Scan(dest...); err != nil {
		return Slot{}, err
	}

	slot.Version = uint32(version)
	slot.CreatedAt = time.UnixMilli(created)

	return slot, nil
}

// Load the slot with the id.
func (s *Store) Load(ctx context.Context, id string) (Slot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, backend, rom_hash, version, created_at, length(blob), blob
		FROM slots
		WHERE id = ?
	`, id)

	slot, err := scanSlot(row, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Slot{}, curated.Errorf(NotFound, id)
		}
		return Slot{}, fmt.Errorf("load slot: %w", err)
	}

	return slot, nil
}

// LoadFor loads the slot with the id but only if it was created by the named
// backend.
func (s *Store) LoadFor(ctx context.Context, id string, backend string) (Slot, error) {
	slot, err := s.Load(ctx, id)
	if err != nil {
		return Slot{}, err
	}
	if slot.Backend != backend {
		return Slot{}, curated.Errorf(WrongBackend, id, slot.Backend)
	}
	return slot, nil
}

// List the slots for the ROM hash, oldest first. An empty hash lists every
// slot. The Blob field of the returned slots is nil.
//
// Returns an empty slice (not nil) if there are no slots.
func (s *Store) List(ctx context.Context, romHash string) ([]Slot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, backend, rom_hash, version, created_at, length(blob)
		FROM slots
		WHERE ? = '' OR rom_hash = ?
		ORDER BY created_at ASC, id COLLATE BINARY ASC
	`, romHash, romHash)
	if err != nil {
		return nil, fmt.Errorf("query slots: %w", err)
	}
	defer rows.Close()

	slots := []Slot{}
	for rows.Next() {
		slot, err := scanSlot(rows, false)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}

	return slots, nil
}
