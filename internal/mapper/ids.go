package mapper

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/datatypes"
)

// idsToJSON stores topic ids as a jsonb string array
func idsToJSON(ids []uuid.UUID) datatypes.JSONSlice[string] {
	return lo.Map(ids, func(id uuid.UUID, _ int) string {
		return id.String()
	})
}

// idsFromJSON drops entries that are not valid uuids
func idsFromJSON(raw datatypes.JSONSlice[string]) []uuid.UUID {
	return lo.FilterMap(raw, func(s string, _ int) (uuid.UUID, bool) {
		id, err := uuid.Parse(s)
		return id, err == nil
	})
}
