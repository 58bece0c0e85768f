package handler

// errorResponse mirrors the envelope produced by the central error
// handler, declared here for the swagger annotations.
type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        userResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type verifyResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
}
