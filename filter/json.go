package filter

import (
	"encoding/json"

	"github.com/arloliu/splitkit/site"
)

type filterJSON struct {
	Sites               *site.Collection     `json:"sites,omitempty"`
	IntegrationDistance *IntegrationDistance `json:"integrationDistance,omitempty"`
}

// MarshalJSON encodes the sites and the integration distance. The index is
// not encoded.
func (f *SourceFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(filterJSON{Sites: f.sites, IntegrationDistance: f.dist})
}

// UnmarshalJSON decodes a filter without index: the result is in
// ModeDistance, or ModeNoFilter when no sites were encoded. Call Reindex to
// get an indexed filter back.
func (f *SourceFilter) UnmarshalJSON(data []byte) error {
	var raw filterJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = *New(raw.Sites, raw.IntegrationDistance, WithoutIndex())

	return nil
}
