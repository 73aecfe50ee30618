package domain

import "time"

// Contract categories
const (
	CategoryLabor       = "labor"
	CategorySales       = "sales"
	CategoryRental      = "rental"
	CategoryService     = "service"
	CategoryPartnership = "partnership"
	CategoryOther       = "other"
)

// Contract lifecycle statuses
const (
	StatusPending    = "pending"
	StatusActive     = "active"
	StatusExpired    = "expired"
	StatusTerminated = "terminated"
)

// ValidCategory reports whether c is one of the fixed contract categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryLabor, CategorySales, CategoryRental, CategoryService, CategoryPartnership, CategoryOther:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the contract lifecycle statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusActive, StatusExpired, StatusTerminated:
		return true
	}
	return false
}

// Contract represents an uploaded contract document and its extracted text.
type Contract struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	FileData   string    `json:"file_data,omitempty"` // base64 of the original upload
	FileSize   int64     `json:"file_size"`
	Category   string    `json:"category"`
	Status     string    `json:"status"`
	Tags       []string  `json:"tags,omitempty"`
	Analysis   *Analysis `json:"analysis,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ContractFilter narrows contract listings.
type ContractFilter struct {
	Category string `form:"category"`
	Status   string `form:"status"`
	Search   string `form:"search"`
}

// UpdateContractRequest is the request to change mutable contract fields.
type UpdateContractRequest struct {
	Category string `json:"category,omitempty"`
	Status   string `json:"status,omitempty"`
}

// CompareRequest is the request to compare two stored contracts.
type CompareRequest struct {
	Contract1ID string `json:"contract1_id" binding:"required"`
	Contract2ID string `json:"contract2_id" binding:"required"`
}

// RealityIssue is one user-reported mismatch between contract and reality.
type RealityIssue struct {
	Clause           string `json:"clause"`
	CurrentSituation string `json:"current_situation"`
	Gap              string `json:"gap"`
}

// RealityCheckRequest describes the actual situation to compare against a contract.
type RealityCheckRequest struct {
	Description string         `json:"description" binding:"required"`
	Issues      []RealityIssue `json:"issues"`
}

// Settings holds the user-facing configuration consumed by the core.
type Settings struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	Theme    string `json:"theme"`
	Language string `json:"language"`
}
