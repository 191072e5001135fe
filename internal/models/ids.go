package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDValues lists every form an id reference may be stored in. Records written
// by this service use the hex string; older records (and other services) use
// the ObjectID itself. A 24-char hex id yields both, anything else only the
// string.
func IDValues(ids ...string) []interface{} {
	out := make([]interface{}, 0, 2*len(ids))
	for _, id := range ids {
		out = append(out, id)
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

// MatchIDs is a query value matching any of ids in either stored form.
func MatchIDs(ids ...string) bson.M {
	return bson.M{"$in": IDValues(ids...)}
}
