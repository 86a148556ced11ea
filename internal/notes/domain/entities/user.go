package entities

// User представляет учетную запись владельца заметок. Сервис заметок
// читает пользователей, но никогда их не изменяет.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Roles        []string `json:"roles"`
	PasswordHash string   `json:"-"`
}
