package models

import "time"

// Profile профиль пользователя. Создаётся лениво при первом запросе.
type Profile struct {
	UserID     string     `json:"userId"`
	Bio        string     `json:"bio"`
	ProfilePic string     `json:"profilePic"`
	LastEdit   *time.Time `json:"lastEdit"`
}

// ProfileView ответ на запрос профиля: сам профиль плюс
// денормализованный список работ пользователя.
type ProfileView struct {
	Profile
	Artworks []*Artwork `json:"artworks"`
}

// DummyProfileUpdate используется для приёма обновления профиля.
type DummyProfileUpdate struct {
	Bio        *string `json:"bio,omitempty"`
	ProfilePic *string `json:"profilePic,omitempty"`
}
