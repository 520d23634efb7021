package curve

import (
	"errors"
	"fmt"

	"github.com/cronokirby/saferith"
)

const (
	formatIdentity     byte = 0x00
	formatUncompressed byte = 0x04
)

// CoordinateBytes is the length of an encoded coordinate.
func (c *Curve) CoordinateBytes() int {
	return (c.field.BitLen() + 7) / 8
}

// PointBytes is the length of an encoded non-identity point.
func (c *Curve) PointBytes() int {
	return 1 + 2*c.CoordinateBytes()
}

// MarshalPoint encodes p as 0x04 ∥ x ∥ y with fixed width coordinates, or as the single byte 0x00 for ∞.
func (c *Curve) MarshalPoint(p Point) []byte {
	if p.IsIdentity() {
		return []byte{formatIdentity}
	}
	size := c.CoordinateBytes()
	data := make([]byte, 1+2*size)
	data[0] = formatUncompressed
	p.x.Big().FillBytes(data[1 : 1+size])
	p.y.Big().FillBytes(data[1+size:])
	return data
}

// UnmarshalPoint decodes a point produced by MarshalPoint and checks that it lies on the curve.
func (c *Curve) UnmarshalPoint(data []byte) (Point, error) {
	if len(data) == 0 {
		return Point{}, errors.New("curve.UnmarshalPoint: data is empty")
	}
	switch data[0] {
	case formatIdentity:
		if len(data) != 1 {
			return Point{}, errors.New("curve.UnmarshalPoint: trailing data after identity")
		}
		return Identity(), nil
	case formatUncompressed:
	default:
		return Point{}, fmt.Errorf("curve.UnmarshalPoint: incorrect format %#x", data[0])
	}
	if len(data) != c.PointBytes() {
		return Point{}, fmt.Errorf("curve.UnmarshalPoint: expected %d bytes, got %d", c.PointBytes(), len(data))
	}
	size := c.CoordinateBytes()
	x := new(saferith.Nat).SetBytes(data[1 : 1+size])
	y := new(saferith.Nat).SetBytes(data[1+size:])
	p, err := c.NewPoint(x, y)
	if err != nil {
		return Point{}, fmt.Errorf("curve.UnmarshalPoint: %w", err)
	}
	return p, nil
}
