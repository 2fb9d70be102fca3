package models

// Envelope is the reply shape shared by every backend microservice and
// relayed to HTTP clients unchanged. StatusCode follows HTTP semantics:
// 200/201 denote success, anything else is a failure carried end-to-end.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

// ErrorResponse is the failure shape surfaced to HTTP clients. It mirrors
// the envelope's failure fields so backend diagnostics survive end-to-end.
type ErrorResponse struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Errors     interface{} `json:"errors,omitempty"`
}

// Pagination carries list query parameters forwarded to backend services.
type Pagination struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset,omitempty"`
	Sort   string `json:"sort,omitempty"`
	Field  string `json:"field,omitempty"`
}
