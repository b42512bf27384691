package entity

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketResolved   TicketStatus = "resolved"
)

type TicketCategory string

const (
	CategoryIT         TicketCategory = "it"
	CategoryHR         TicketCategory = "hr"
	CategoryFacilities TicketCategory = "facilities"
	CategorySoftware   TicketCategory = "software"
	CategoryOther      TicketCategory = "other"
)

type SupportTicket struct {
	ID           uint64         `json:"id"`
	EmployeeID   string         `json:"employee_id"`
	EmployeeName string         `json:"employee_name"`
	Title        string         `json:"title"`
	Category     TicketCategory `json:"category"`
	Description  string         `json:"description"`
	Priority     Priority       `json:"priority"`
	Status       TicketStatus   `json:"status"`
	CreatedDate  string         `json:"created_date"`
}

func (t SupportTicket) Key() uint64 { return t.ID }

type CreateTicketRequest struct {
	Title       string         `json:"title" validate:"required"`
	Category    TicketCategory `json:"category" validate:"required,oneof=it hr facilities software other"`
	Priority    Priority       `json:"priority" validate:"required,oneof=low medium high urgent"`
	Description string         `json:"description" validate:"required"`
}
