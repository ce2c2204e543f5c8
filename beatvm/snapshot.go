package beatvm

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

type snapshot struct {
	UserMemory  []Value `cbor:"1,keyasint"`
	Variables   []Value `cbor:"2,keyasint"`
	Controllers []Value `cbor:"3,keyasint"`
	Controls    []Value `cbor:"4,keyasint"`
}

// Snapshot writes the program state (memory, controller and control arrays) as CBOR.
// The instruction list is not included.
func (p *Program) Snapshot(w io.Writer) error {
	return cbor.NewEncoder(w).Encode(snapshot{
		UserMemory:  p.memory[:p.userMemorySize],
		Variables:   p.memory[p.userMemorySize:],
		Controllers: p.controllers[:],
		Controls:    p.controls[:],
	})
}

// Restore reads a state written by Snapshot. Variables map by name and user memory by address,
// so a snapshot taken with a different user memory size restores the overlapping part.
func (p *Program) Restore(r io.Reader) error {
	var s snapshot
	if err := cbor.NewDecoder(r).Decode(&s); err != nil {
		return err
	}
	copy(p.memory[:p.userMemorySize], s.UserMemory)
	copy(p.memory[p.userMemorySize:], s.Variables)
	copy(p.controllers[:], s.Controllers)
	copy(p.controls[:], s.Controls)
	return nil
}
