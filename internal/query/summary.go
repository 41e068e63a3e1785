package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fields read from the external users and orders collections.
const (
	FieldOrderAmount    = "amount"
	FieldOrderCreatedAt = "createdAt"
	FieldUserStatus     = "status"
)

// Group keys used when a document lacks the grouped field.
const (
	UnknownCategory = "uncategorized"
	UnknownStatus   = "unknown"
)

// TotalRevenuePipeline sums order amounts into a single {total} document.
// Amounts may be stored as text; unparsable ones count as zero. An empty
// collection yields no document at all, which callers read as 0.
func TotalRevenuePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: toDouble("$"+FieldOrderAmount, float64(0))}}},
		}}},
	}
}

// CountByCategoryPipeline yields {category, count} per category.
func CountByCategoryPipeline() mongo.Pipeline {
	return countBy(FieldCategory, UnknownCategory, "category", "count")
}

// UsersByStatusPipeline yields {name, value} per user status.
func UsersByStatusPipeline() mongo.Pipeline {
	return countBy(FieldUserStatus, UnknownStatus, "name", "value")
}

// RevenueByMonthPipeline yields {month, revenue} sorted by month (1-12).
// Orders whose createdAt cannot be read as a date are left out.
func RevenueByMonthPipeline() mongo.Pipeline {
	const monthField = "createdMonth"
	return mongo.Pipeline{
		{{Key: "$addFields", Value: bson.D{
			{Key: monthField, Value: bson.D{{Key: "$month", Value: bson.D{{Key: "$convert", Value: bson.D{
				{Key: "input", Value: "$" + FieldOrderCreatedAt},
				{Key: "to", Value: "date"},
				{Key: "onError", Value: nil},
				{Key: "onNull", Value: nil},
			}}}}}},
		}}},
		{{Key: "$match", Value: bson.D{{Key: monthField, Value: bson.D{{Key: "$ne", Value: nil}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + monthField},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: toDouble("$"+FieldOrderAmount, float64(0))}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "month", Value: "$_id"},
			{Key: "revenue", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "month", Value: 1}}}},
	}
}

func countBy(field, missing, keyName, valueName string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$" + field, missing}}}},
			{Key: valueName, Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: keyName, Value: "$_id"},
			{Key: valueName, Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: keyName, Value: 1}}}},
	}
}
