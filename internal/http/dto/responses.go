package dto

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type APIKeyResponse struct {
	APIKey string `json:"api_key"`
}

type CreateCredentialResponse struct {
	OK         bool   `json:"ok"`
	Credential any    `json:"credential"`
	OnChain    bool   `json:"on_chain"`
	Message    string `json:"message"`
}
