package models

// Pipe is one obstacle half. X scrolls client-side; Y is fixed once placed.
type Pipe struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PipePair couples the upper and lower halves of one obstacle. Halves are
// always generated and recycled together, never individually.
type PipePair struct {
	Upper Pipe `json:"uPipe"`
	Lower Pipe `json:"lPipe"`
}
