package dto

type SentEmailFilters struct {
	TemplateID string
	Status     string
	Recipient  string
	RefType    string
	RefID      string
	Page       int
	PageSize   int
}
