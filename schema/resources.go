package schema

// Resource is a URI-addressed readable artifact the server exposes,
// optionally subscribable for change notifications.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ListResourcesResult is the result of resources/list.
type ListResourcesResult struct {
	Resources []Resource `json:"resources"`
}

// ReadResourceParams is the params of resources/read.
type ReadResourceParams struct {
	URI string `json:"uri"`
}

// ResourceContents is one item of a resources/read result: either text or
// base64-encoded binary data for the given URI.
type ResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     string `json:"blob,omitempty"`
}

// ReadResourceResult is the result of resources/read.
type ReadResourceResult struct {
	Contents []ResourceContents `json:"contents"`
}

// SubscribeResourceParams is the params of resources/subscribe.
type SubscribeResourceParams struct {
	URI string `json:"uri"`
}

// ResourceUpdatedParams is the params of the resources/updated
// notification.
type ResourceUpdatedParams struct {
	URI string `json:"uri"`
}
