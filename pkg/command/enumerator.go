package command

import "iter"

// DefaultBatch is the number of commands fetched per [Enumerator.Next] call
// when the caller has no preference.
const DefaultBatch = 16

// Enumerator is a forward-only cursor over a group's command list.
// It is not safe for concurrent use.
type Enumerator struct {
	commands []Command
	pos      int
}

func newEnumerator(commands []Command) *Enumerator {
	return &Enumerator{commands: commands}
}

// Next returns up to count commands from the current position and advances
// past them. The second result is the number returned, which is less than
// count only when the list ran out.
func (e *Enumerator) Next(count int) ([]Command, int) {
	if count <= 0 || e.pos >= len(e.commands) {
		return nil, 0
	}

	end := min(e.pos+count, len(e.commands))
	out := make([]Command, end-e.pos)
	copy(out, e.commands[e.pos:end])
	e.pos = end

	return out, len(out)
}

// Reset moves the cursor back to the first command.
func (e *Enumerator) Reset() {
	e.pos = 0
}

// Skip is not supported and leaves the cursor unchanged.
func (e *Enumerator) Skip(_ int) error {
	return ErrNotImplemented
}

// Clone is not supported.
func (e *Enumerator) Clone() (*Enumerator, error) {
	return nil, ErrNotImplemented
}

// Len returns the length of the command list.
func (e *Enumerator) Len() int {
	return len(e.commands)
}

// Done reports whether every command has been returned.
func (e *Enumerator) Done() bool {
	return e.pos >= len(e.commands)
}

// All returns an iterator that fetches batch commands at a time with [Next]
// until the list is exhausted. Stopping early still consumes the rest of the
// current batch.
func (e *Enumerator) All(batch int) iter.Seq[Command] {
	return func(yield func(Command) bool) {
		for {
			cmds, n := e.Next(batch)
			for _, cmd := range cmds {
				if !yield(cmd) {
					return
				}
			}

			if n < batch || n == 0 {
				return
			}
		}
	}
}
