package domain

// User is a registered demo account
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"` // RFC3339
}

// StoredUser pairs a user with its password. This is a local demo credential
// store, not a real credential system; passwords are kept in plaintext.
type StoredUser struct {
	User     User   `json:"user"`
	Password string `json:"password"`
}

// AuthResult is returned by register/login. Failures are values, never errors.
type AuthResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// PurchaseHistory is one completed purchase attributed to a logged-in user
type PurchaseHistory struct {
	ID     string         `json:"id"`
	Date   string         `json:"date"` // RFC3339
	Items  []PurchaseItem `json:"items"`
	Total  float64        `json:"total"`
	QRCode string         `json:"qrCode"`
}
