// README: Common value objects used across modules.
package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// ID identifies any stored entity.
type ID string

// NewID returns a fresh random identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

func (id ID) String() string { return string(id) }

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// Valid reports whether p is finite and inside lat [-90,90], lng [-180,180].
func (p Point) Valid() bool {
	return validate.Struct(p) == nil
}
