package graphapi

// Endpoint is a Graph API resource path relative to the versioned base URL.
type Endpoint string

const (
	EndpointMessages         Endpoint = "me/messages"
	EndpointMessengerProfile Endpoint = "me/messenger_profile"
)

// Method is the HTTP method of a dispatch.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodDelete Method = "DELETE"
)

// Envelope is the field mapping sent with a request. For GET it becomes the
// query string, otherwise the JSON body.
type Envelope map[string]any
