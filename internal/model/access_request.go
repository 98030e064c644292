package model

import "time"

// Статусы запроса на расшифровку. Переходы только pending → approved
// и pending → denied; терминальные статусы не откатываются.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestDenied   = "denied"
)

// AccessRequest — запрос анонимного получателя на расшифровку файла.
// Получатель идентифицируется только строкой ключа доступа.
type AccessRequest struct {
	ID      string `gorm:"primaryKey;type:uuid"`
	FileID  string `gorm:"not null;index"`
	OwnerID string `gorm:"not null;index"`

	File *File `gorm:"foreignKey:FileID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	RequesterKey string `gorm:"not null"`
	Status       string `gorm:"not null;default:pending"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// FileName — денормализованное имя файла для списков; в БД не хранится.
	FileName string `gorm:"-"`
}
