package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func validatePos(x, y int) error {
	if x < 0 || y < 0 {
		return errors.New("coordinates must be non-negative")
	}
	return nil
}

func (p PositionPayload) Validate() error {
	return validatePos(p.X, p.Y)
}

func (p PlacePayload) Validate() error {
	if p.Slot < 0 {
		return errors.New("slot must be non-negative")
	}
	return validatePos(p.X, p.Y)
}

func (p DepositPayload) Validate() error {
	if p.Slot < 0 {
		return errors.New("slot must be non-negative")
	}
	if p.Count < 0 {
		return errors.New("count must be non-negative")
	}
	return validatePos(p.X, p.Y)
}

func (p WithdrawPayload) Validate() error {
	if p.Count < 0 {
		return errors.New("count must be non-negative")
	}
	return validatePos(p.X, p.Y)
}

func (r TooltipRequest) Validate() error {
	if r.Item == "" {
		return errors.New("item is required")
	}
	return nil
}

func (p ItemPayload) Validate() error {
	if p.ItemID == "" {
		return errors.New("itemId is required")
	}
	return nil
}
