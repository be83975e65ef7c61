package response

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	User  any    `json:"user"`
}

type DeleteResponse struct {
	Message string `json:"message"`
}
