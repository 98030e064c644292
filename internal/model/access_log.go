package model

import "time"

// AccessLog — неизменяемая запись об успешном разрешении ключа доступа.
// Пишется только в первичное хранилище, по принципу best effort.
type AccessLog struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	OwnerID   string `gorm:"not null;index"`
	AccessKey string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
