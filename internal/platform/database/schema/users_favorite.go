package schema

// UserFavoriteTable represents the 'users.favorite' table
type UserFavoriteTable struct {
	Table       string
	UserID      string
	Origin      string
	Destination string
	AddedAt     string
}

// UserFavorite is the schema definition for users.favorite
var UserFavorite = UserFavoriteTable{
	Table:       "users.favorite",
	UserID:      "userid",
	Origin:      "origincode",
	Destination: "destinationcode",
	AddedAt:     "addedat",
}

// Columns returns all standard column names
func (t UserFavoriteTable) Columns() []string {
	return []string{t.UserID, t.Origin, t.Destination, t.AddedAt}
}
