package theme

import "math"

// Typography holds font sizes in pixels.
type Typography struct {
	Title      int32
	Header     int32
	Body       int32
	Small      int32
	Log        int32
	LineFactor float32
}

var Type = Typography{
	Title:      30,
	Header:     21,
	Body:       18,
	Small:      15,
	Log:        16,
	LineFactor: 1.4,
}

// LineHeight is the vertical advance for one line of size.
func (t Typography) LineHeight(size int32) int32 {
	if size < 1 {
		size = 1
	}
	return int32(math.Round(float64(size) * float64(t.LineFactor)))
}
