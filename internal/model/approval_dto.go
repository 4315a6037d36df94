package model

// ApprovalRequest represents the request body for creating or updating
// an approval request
type ApprovalRequest struct {
	Subject      string `json:"subject"`
	RequestOwner string `json:"requestOwner"`
	Category     string `json:"category"`
	Status       string `json:"status"`
	TotalAmount  string `json:"totalAmount"`
	Currency     string `json:"currency"`
}

// ApprovalResponse represents an approval request in API responses
type ApprovalResponse struct {
	ID             string `json:"id"`
	Subject        string `json:"subject"`
	RequestOwner   string `json:"requestOwner"`
	Category       string `json:"category"`
	Status         string `json:"status"`
	TotalAmount    string `json:"totalAmount"`
	Currency       string `json:"currency"`
	TotalAmountUSD string `json:"totalAmountUsd"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// ApprovalsListResponse represents the full approval queue
type ApprovalsListResponse struct {
	Data []ApprovalResponse `json:"data"`
}
