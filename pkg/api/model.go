package api

import (
	"encoding/json"
	"fmt"
)

// ModelRecord is a provider-supplied model object. It is carried as raw
// bytes so provider-specific schema extensions survive the listing path
// without reinterpretation.
type ModelRecord = json.RawMessage

// ModelList is the response shape for GET /v1/models.
type ModelList struct {
	Object string        `json:"object"`
	Data   []ModelRecord `json:"data"`
}

// NewModelList wraps records in the standard list envelope. A nil slice
// still serializes as an empty JSON array.
func NewModelList(records []ModelRecord) ModelList {
	if records == nil {
		records = []ModelRecord{}
	}
	return ModelList{Object: "list", Data: records}
}

// RecordID extracts the string "id" of a model record. The second return
// is false when the field is absent or not a string.
func RecordID(rec ModelRecord) (string, bool) {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec, &probe); err != nil || probe.ID == "" {
		return "", false
	}
	return probe.ID, true
}

// StaticModelRecord synthesizes the minimal record used for models that
// come from static configuration rather than live discovery.
func StaticModelRecord(id string) ModelRecord {
	quoted, _ := json.Marshal(id)
	return ModelRecord(fmt.Sprintf(`{"id":%s,"object":"model","created":null,"owned_by":null}`, quoted))
}
