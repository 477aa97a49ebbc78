package diskfile

import "fmt"

// Mode is the capability set derived from an open-mode string.
type Mode struct {
	CanRead  bool
	CanWrite bool
	Binary   bool
}

// ParseMode parses a mode string drawn from the alphabet {r, w, b} into a
// capability set. At least one of "r" or "w" must be present. "r" requires
// the file to exist, "w" creates/truncates, "rw" opens read-modify-write
// creating the file if absent. Absence of "b" means text mode.
//
// ParseMode has no side effects; the file itself is opened by Open using
// the returned capabilities.
func ParseMode(s string) (Mode, error) {
	var mode Mode
	for _, c := range s {
		switch c {
		case 'r':
			if mode.CanRead {
				return Mode{}, fmt.Errorf("%w: duplicate 'r' in %q", ErrInvalidMode, s)
			}
			mode.CanRead = true
		case 'w':
			if mode.CanWrite {
				return Mode{}, fmt.Errorf("%w: duplicate 'w' in %q", ErrInvalidMode, s)
			}
			mode.CanWrite = true
		case 'b':
			if mode.Binary {
				return Mode{}, fmt.Errorf("%w: duplicate 'b' in %q", ErrInvalidMode, s)
			}
			mode.Binary = true
		default:
			return Mode{}, fmt.Errorf("%w: unknown character %q in %q", ErrInvalidMode, c, s)
		}
	}
	if !mode.CanRead && !mode.CanWrite {
		return Mode{}, fmt.Errorf("%w: %q needs at least one of 'r' or 'w'", ErrInvalidMode, s)
	}
	return mode, nil
}
