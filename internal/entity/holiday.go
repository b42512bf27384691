package entity

type Holiday struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
	Type string `json:"type"`
}

func (h Holiday) Key() uint64 { return h.ID }

type CreateHolidayRequest struct {
	Name string `json:"name" validate:"required"`
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Type string `json:"type" validate:"required"`
}
