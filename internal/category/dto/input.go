package dto

type CategoryInput struct {
	RegisterTypeID int
	Name           string
	Description    string
	Color          string
	SortOrder      int
	// IsActive is left unchanged on update when nil; new categories default to active.
	IsActive *bool
}
