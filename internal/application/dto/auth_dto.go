package dto

// LoginRequest body para POST /api/auth/login. El acceso es por frase de
// paso compartida; Operator solo identifica quién opera en los logs.
type LoginRequest struct {
	Passphrase string `json:"passphrase"`
	Operator   string `json:"operator,omitempty"`
}

// LoginResponse token Bearer para las rutas protegidas.
type LoginResponse struct {
	Token    string `json:"token"`
	Operator string `json:"operator"`
}
