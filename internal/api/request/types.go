package request

// CreateGuestRequest is the request body for creating a guest player. The
// display name may be empty.
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CommandRequest is the request body for sending a game command
type CommandRequest struct {
	Command string `json:"command"`
}
