package load

import (
	"fmt"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/enumgen/schema"
)

// Snapshot freezes one inspection so generation can run without a database
// connection. The table slice keeps the inspector's ordering.
type Snapshot struct {
	Dialect     string          `msgpack:"dialect"`
	Schema      string          `msgpack:"schema,omitempty"`
	Tables      []*schema.Table `msgpack:"tables"`
	InspectedAt time.Time       `msgpack:"inspected_at"`
}

// NewSnapshot stamps the given inspection result with the current time.
func NewSnapshot(drvDialect, schemaName string, tables []*schema.Table) *Snapshot {
	return &Snapshot{
		Dialect:     drvDialect,
		Schema:      schemaName,
		Tables:      tables,
		InspectedAt: time.Now().UTC(),
	}
}

// WriteSnapshot serializes the snapshot to path.
func WriteSnapshot(path string, snap *Snapshot) error {
	b, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a snapshot previously written with WriteSnapshot.
func ReadSnapshot(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	snap := &Snapshot{}
	if err := msgpack.Unmarshal(b, snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return snap, nil
}
