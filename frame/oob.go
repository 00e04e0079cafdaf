package frame

import "fmt"

// Mode is the out of bounds policy for one axis.
type Mode int

const (
	// Constant repeats the border pixel: aaa|abc|ccc.
	Constant Mode = iota

	// MirrorHalf reflects about the half-pixel boundary: cba|abc|cba.
	MirrorHalf

	// MirrorWhole reflects about the border pixel centers: dcb|abcd|cba.
	MirrorWhole

	// Wrap is toroidal: abc|abc|abc.
	Wrap

	// Transparent reads as the zero tuple outside the image.
	Transparent
)

func (m Mode) String() string {
	switch m {
	case Constant:
		return "constant"
	case MirrorHalf:
		return "mirror-half"
	case MirrorWhole:
		return "mirror-whole"
	case Wrap:
		return "wrap"
	case Transparent:
		return "transparent"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the names returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	for m := Constant; m <= Transparent; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return Constant, fmt.Errorf("%w: %q", ErrMode, s)
}

// Resolve maps coordinate i onto [0, n). For Transparent, ok is false when i
// lies outside the image. n must be positive.
func (m Mode) Resolve(i, n int) (j int, ok bool) {
	if uint(i) < uint(n) {
		return i, true
	}
	switch m {
	case MirrorHalf:
		j = mod(i, 2*n)
		if j >= n {
			j = 2*n - 1 - j
		}
		return j, true
	case MirrorWhole:
		if n == 1 {
			return 0, true
		}
		p := 2*n - 2
		j = mod(i, p)
		if j >= n {
			j = p - j
		}
		return j, true
	case Wrap:
		return mod(i, n), true
	case Transparent:
		return 0, false
	}
	return min(max(i, 0), n-1), true
}

func mod(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
