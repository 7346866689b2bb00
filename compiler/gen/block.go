package gen

import "github.com/syssam/enumgen/schema"

// Row is one fetched lookup row reduced to text values. NULL columns scan to
// empty strings.
type Row struct {
	ID   string // raw member value, trusted verbatim
	Desc string // member name before sanitizing
	Key  string // MULTI discriminator, ignored otherwise
}

// Member is one enum member in emitted order.
type Member struct {
	Name  string // sanitized identifier
	Value string // raw id text
}

// Block is an ordered run of members emitted as one enum type.
type Block struct {
	EnumName string
	Members  []Member
}

// BlockBuilder groups an ordered row stream into blocks. Rows are consumed
// exactly once, in source order, and never re-sorted; in MULTI mode a block
// ends exactly where the sanitized key value of adjacent rows differs.
// Non-contiguous repeats of a key therefore produce separate blocks with the
// same name, which mirrors what the row order says rather than fixing it.
type BlockBuilder struct {
	spec    ResolvedSpec
	lastKey string
	rows    int
	current []Member
	blocks  []Block
}

// NewBlockBuilder creates a builder for the given resolved spec.
func NewBlockBuilder(spec ResolvedSpec) *BlockBuilder {
	return &BlockBuilder{spec: spec}
}

// Add consumes the next row in source order.
func (b *BlockBuilder) Add(r Row) {
	key := ""
	if b.spec.Multi {
		key = schema.CleanIdent(r.Key)
	}
	if b.rows > 0 && key != b.lastKey {
		b.flush()
	}
	b.current = append(b.current, Member{Name: schema.CleanIdent(r.Desc), Value: r.ID})
	b.lastKey = key
	b.rows++
}

// Finish flushes the trailing block and returns all blocks in encounter
// order. ok is false when no row was ever added; the caller then reports
// "no records" instead of emitting anything.
func (b *BlockBuilder) Finish() (blocks []Block, ok bool) {
	if b.rows == 0 {
		return nil, false
	}
	b.flush()
	return b.blocks, true
}

func (b *BlockBuilder) flush() {
	b.blocks = append(b.blocks, Block{
		EnumName: b.spec.BlockName(b.lastKey),
		Members:  b.current,
	})
	b.current = nil
}
