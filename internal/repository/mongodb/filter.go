package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"realestateapi/internal/model"
)

// BuildFilter translates a PropertyFilter into a MongoDB query document.
// Text criteria are matched literally and case-insensitively.
func BuildFilter(f model.PropertyFilter) bson.D {
	clauses := bson.A{}

	switch {
	case f.Name != "":
		rx := containsIgnoreCase(f.Name)
		clauses = append(clauses, bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: rx}},
			bson.D{{Key: "address", Value: rx}},
		}}})
	case f.Address != "":
		clauses = append(clauses, bson.D{{Key: "address", Value: containsIgnoreCase(f.Address)}})
	}

	if f.MinPrice != nil {
		clauses = append(clauses, bson.D{{Key: "price", Value: bson.D{{Key: "$gte", Value: *f.MinPrice}}}})
	}
	if f.MaxPrice != nil {
		clauses = append(clauses, bson.D{{Key: "price", Value: bson.D{{Key: "$lte", Value: *f.MaxPrice}}}})
	}

	if len(clauses) == 0 {
		return bson.D{}
	}
	return bson.D{{Key: "$and", Value: clauses}}
}

// FindOptions returns the sort and paging options for a filtered listing.
func FindOptions(f model.PropertyFilter) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if f.Paginated() {
		opts.SetSkip(int64(f.Skip())).SetLimit(int64(f.PageSize))
	}
	return opts
}

func containsIgnoreCase(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}
