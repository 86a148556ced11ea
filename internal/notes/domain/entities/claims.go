package entities

// AuthClaims содержит личность вызывающего, извлеченную из проверенного токена.
// Живет ровно один запрос и никогда не сохраняется.
type AuthClaims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}
