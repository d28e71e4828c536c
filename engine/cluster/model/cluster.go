package model

// Cluster maps a symbolic name to a document store connection URI.
// Name and URI are each globally unique across the registry. Owner and
// Credential are optional, stored and compared in plain text; Credential
// is write-only and never appears in JSON responses.
type Cluster struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URI        string `json:"uri"`
	Owner      string `json:"owner,omitempty"`
	Credential string `json:"-"`
}
