package models

import "time"

// AutoCategory значение-маркер в списке категорий: классификацию
// выполняет внешний классификатор изображений.
const AutoCategory = "Auto"

// FallbackCategory категория по умолчанию, когда ни автоматическая,
// ни ручная категоризация не дали результата.
const FallbackCategory = "Other"

// Artwork представляет загруженную работу.
// Список категорий всегда непустой: при неудаче классификации
// подставляется FallbackCategory.
type Artwork struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	Categories  []string  `json:"categories"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Tags        []string  `json:"tags,omitempty"`
	FilePath    string    `json:"filePath"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UploadRequest данные для конвейера загрузки работы: метаданные из
// multipart-формы плюс путь к уже сохранённому во временном месте файлу.
type UploadRequest struct {
	Title       string
	Artist      string
	Categories  []string
	Description string
	Price       float64
	Tags        []string
	UserID      string
	TempPath    string
}

// ArtworkPage страница списка работ с метаданными пагинации.
type ArtworkPage struct {
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	Pages    int        `json:"pages"`
	Artworks []*Artwork `json:"artworks"`
}
