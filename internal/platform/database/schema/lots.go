package schema

// LotsTable represents the 'lots' table
type LotsTable struct {
	Table          string
	ID             string
	Title          string
	Image          string
	Status         string
	CurrentPrice   string
	EstimatedPrice string
	LotStartTime   string
	LotEndTime     string
	UserID         string
	CreatedAt      string
	UpdatedAt      string
}

// Lots is the schema definition for lots
var Lots = LotsTable{
	Table:          "lots",
	ID:             "id",
	Title:          "title",
	Image:          "image",
	Status:         "status",
	CurrentPrice:   "currentprice",
	EstimatedPrice: "estimatedprice",
	LotStartTime:   "lotstarttime",
	LotEndTime:     "lotendtime",
	UserID:         "userid",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

// Columns returns all standard column names
func (t LotsTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Image, t.Status, t.CurrentPrice, t.EstimatedPrice,
		t.LotStartTime, t.LotEndTime, t.UserID, t.CreatedAt, t.UpdatedAt,
	}
}
