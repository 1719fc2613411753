package domain

import "errors"

var (
	ErrDuplicateCommodity = errors.New("commodity already registered")
	ErrCommodityMismatch  = errors.New("unit holds a different commodity")
	ErrQuantityOverflow   = errors.New("unit quantity overflow")
	ErrOutOfBounds        = errors.New("out of bounds")
	ErrOccupied           = errors.New("position is occupied")
	ErrNoBlock            = errors.New("no block at position")
	ErrNoUnit             = errors.New("no storage unit at position")
	ErrNotUnitItem        = errors.New("item is not a storage unit")
	ErrDuplicateRecipe    = errors.New("recipe already registered")
)
