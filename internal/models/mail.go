package models

// PasswordResetMail сообщение для воркера отправки почты:
// публикуется API при запросе сброса пароля.
type PasswordResetMail struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	ResetLink string `json:"reset_link"`
}
