package model

import "time"

// Notification — системное уведомление пользователю. Единственная мутация —
// установка флага прочтения; удаление ядром не выполняется.
type Notification struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID string `gorm:"not null;index"`

	Title   string `gorm:"not null"`
	Message string
	Type    string // "alert" | "update" | "info"
	IsRead  bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
