package entity

// Department representa un área de la empresa.
type Department struct {
	ID          int64
	Name        string
	Description string
}
