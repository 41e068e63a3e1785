package domain

// Collection names. users and orders are owned by other services; only a
// few of their fields are read here.
const (
	CollProperties = "properties"
	CollReviews    = "reviews"
	CollUsers      = "users"
	CollOrders     = "orders"
)

type Stats struct {
	Properties int64   `json:"properties"`
	Users      int64   `json:"users"`
	Reviews    int64   `json:"reviews"`
	Revenue    float64 `json:"revenue"`
}

type CategoryCount struct {
	Category string `bson:"category" json:"category"`
	Count    int64  `bson:"count" json:"count"`
}

type MonthRevenue struct {
	Month   int     `bson:"month" json:"month"`
	Revenue float64 `bson:"revenue" json:"revenue"`
}

type StatusCount struct {
	Name  string `bson:"name" json:"name"`
	Value int64  `bson:"value" json:"value"`
}

type Charts struct {
	PropertiesByCategory []CategoryCount `json:"propertiesByCategory"`
	RevenueByMonth       []MonthRevenue  `json:"revenueByMonth"`
	UsersStatus          []StatusCount   `json:"usersStatus"`
}
