package nxos

import (
	"github.com/newtron-network/nxcfg/pkg/util"
)

// bodyIndent prefixes every body line of a serialized block
const bodyIndent = "  "

// BlockSet is an ordered set of configuration blocks keyed by header line.
// Blocks keep the order in which they were first created, and body lines
// keep the order in which they were appended; nothing else orders output.
type BlockSet struct {
	blocks util.OrderedMap[string, []string]
}

// NewBlockSet returns an empty block set
func NewBlockSet() *BlockSet {
	return &BlockSet{}
}

// Ensure creates an empty block for header if none exists yet
func (b *BlockSet) Ensure(header string) {
	if !b.blocks.Has(header) {
		b.blocks.Set(header, nil)
	}
}

// Append adds lines to the body of header, creating the block on demand.
func (b *BlockSet) Append(header string, lines ...string) {
	body, _ := b.blocks.Get(header)
	b.blocks.Set(header, append(body, lines...))
}

// Has reports whether a block exists for header
func (b *BlockSet) Has(header string) bool {
	return b.blocks.Has(header)
}

// Headers returns block headers in creation order
func (b *BlockSet) Headers() []string {
	return b.blocks.Keys()
}

// Body returns a copy of the body lines of header
func (b *BlockSet) Body(header string) []string {
	body, _ := b.blocks.Get(header)
	out := make([]string, len(body))
	copy(out, body)
	return out
}

// Len returns the number of blocks
func (b *BlockSet) Len() int {
	return b.blocks.Len()
}

// Lines serializes the set: for each block a blank separator, the header,
// then the body indented by two spaces.
func (b *BlockSet) Lines() []string {
	var out []string
	b.blocks.Range(func(header string, body []string) bool {
		out = append(out, "", header)
		out = append(out, util.IndentLines(body, bodyIndent)...)
		return true
	})
	return out
}
