package model

import "time"

// File — запись о загруженном файле. Натуральный ключ — пара (owner_id, name):
// повторное сохранение с тем же именем перезаписывает запись.
type File struct {
	ID      string `gorm:"primaryKey;type:uuid"`
	OwnerID string `gorm:"not null;index;uniqueIndex:idx_files_owner_name"`

	// Связи
	Owner *Account `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Name string `gorm:"not null;uniqueIndex:idx_files_owner_name"`
	Size int64
	Type string // MIME
	URL  string

	// Поля классификации от внешнего анализатора; NULL до анализа.
	Category  *string
	RiskLevel *string
	Verdict   *string

	// Опциональное зашифрованное содержимое (шифрование выполняется клиентом).
	CipherContent []byte
	IV            []byte

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
