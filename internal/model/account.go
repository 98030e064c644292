package model

import "time"

// Account — владелец файлов. Пароль хранится и сравнивается как непрозрачная
// строка: контракт API требует дословного сравнения при логине.
type Account struct {
	ID       string `gorm:"primaryKey;type:uuid"`
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Username string

	// SessionSalt ротируется при каждом успешном логине; NULL до первого
	// логина (тогда при выводе ключа используется легаси-токен).
	SessionSalt *string

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Salt возвращает текущую соль или пустую строку, если она не задана.
func (a *Account) Salt() string {
	if a.SessionSalt == nil {
		return ""
	}
	return *a.SessionSalt
}
