package signup

// RegisterParams is the JSON request body for user registration
type RegisterParams struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	IsStudent bool   `json:"is_student,omitempty"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
	IsTester  bool   `json:"is_tester,omitempty"`
}

// AccountPayload is the account reference included in a success response
type AccountPayload struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// RegisterData is the data half of a successful registration response
type RegisterData struct {
	User    AccountPayload `json:"user"`
	Message string         `json:"message"`
}

// RegisterResponse is the discriminated response shape: exactly one of
// Data and Error is set.
type RegisterResponse struct {
	Data  *RegisterData `json:"data"`
	Error *string       `json:"error"`
}
