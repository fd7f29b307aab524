package schema

// UsersTable represents the 'users' table
type UsersTable struct {
	Table        string
	ID           string
	Email        string
	Password     string
	IsRememberMe string
	CreatedAt    string
	UpdatedAt    string
}

// Users is the schema definition for users
var Users = UsersTable{
	Table:        "users",
	ID:           "id",
	Email:        "email",
	Password:     "password",
	IsRememberMe: "isrememberme",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t UsersTable) Columns() []string {
	return []string{t.ID, t.Email, t.Password, t.IsRememberMe, t.CreatedAt, t.UpdatedAt}
}
