package helpers

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func StringTrim(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"'")
}

// ParseID parses a hex object id coming from a path or body, tolerating
// surrounding whitespace and quotes.
func ParseID(raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(StringTrim(raw))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func IsValidID(raw string) bool {
	_, ok := ParseID(raw)
	return ok
}

// ParseIDs parses every entry and drops duplicates while keeping order.
// The first malformed entry is returned as bad.
func ParseIDs(raw []string) (ids []primitive.ObjectID, bad string, ok bool) {
	seen := make(map[primitive.ObjectID]struct{}, len(raw))
	ids = make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		id, valid := ParseID(r)
		if !valid {
			return nil, r, false
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, "", true
}
