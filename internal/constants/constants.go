package constants

const (
	Create    = "create"
	Update    = "update"
	Delete    = "delete"
	LoanStart = "loan_start"
	LoanEnd   = "loan_end"
)
