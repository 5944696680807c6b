package dto

type ClientInput struct {
	Type     string
	Name     string
	LastName string
	RUT      string
	Email    string
	Phone    string
	Address  string
	City     string
	Country  string
	Notes    string
}
