package schema

// RefEmployeeTable represents the 'employee' table
type RefEmployeeTable struct {
	Table        string
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Level        string
	NameSearch   string
	CreatedAt    string
}

// RefEmployee is the schema definition for employee
var RefEmployee = RefEmployeeTable{
	Table:        "employee",
	ID:           "id",
	Name:         "name",
	Email:        "email",
	PasswordHash: "password_hash",
	Level:        "level",
	NameSearch:   "name_search",
	CreatedAt:    "created_at",
}

func (t RefEmployeeTable) Columns() []string {
	return []string{t.ID, t.Name, t.Email, t.PasswordHash, t.Level, t.CreatedAt}
}
