package entity

// Token represents one OCR-recognized word and its bounding box in image-pixel coordinates.
type Token struct {
	Text      string  `json:"text"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	PageIndex int     `json:"page_index"`
	Block     int     `json:"block,omitempty"`
	Par       int     `json:"par,omitempty"`
	Line      int     `json:"line,omitempty"`
	Conf      float64 `json:"conf,omitempty"`
}

// Box returns the token's bounding box.
func (t Token) Box() Box {
	return Box{X0: t.X, Y0: t.Y, X1: t.X + t.Width, Y1: t.Y + t.Height}
}

// Box is an axis-aligned rectangle; X1/Y1 are exclusive edges.
type Box struct {
	X0, Y0, X1, Y1 int
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		X0: min(b.X0, o.X0),
		Y0: min(b.Y0, o.Y0),
		X1: max(b.X1, o.X1),
		Y1: max(b.Y1, o.Y1),
	}
}

// Center returns the box centre as floats.
func (b Box) Center() (float64, float64) {
	return float64(b.X0+b.X1) / 2, float64(b.Y0+b.Y1) / 2
}

func (b Box) Width() int  { return b.X1 - b.X0 }
func (b Box) Height() int { return b.Y1 - b.Y0 }
