package handlers

import (
	"CloudVault/internal/keygen"
	"CloudVault/internal/model"
	"time"
)

// Внешний JSON-словарь API. Внутренние модели наружу не отдаются:
// оба хранилища маппятся в один и тот же набор полей.

type accountDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	ShareKey  string    `json:"shareKey"`
	CreatedAt time.Time `json:"createdAt"`
}

type ownerDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type fileDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Size          int64     `json:"size"`
	Type          string    `json:"type"`
	URL           string    `json:"url"`
	Category      *string   `json:"category"`
	RiskLevel     *string   `json:"riskLevel"`
	Verdict       *string   `json:"verdict"`
	UploadedAt    time.Time `json:"uploadedAt"`
	CipherContent []byte    `json:"cipherContent,omitempty"`
	IV            []byte    `json:"iv,omitempty"`
}

type requestDTO struct {
	ID           string    `json:"id"`
	FileID       string    `json:"fileId"`
	OwnerID      string    `json:"ownerId"`
	RequesterKey string    `json:"requesterKey"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	FileName     string    `json:"fileName,omitempty"`
}

type notificationDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func toAccountDTO(a *model.Account) accountDTO {
	return accountDTO{
		ID:        a.ID,
		Email:     a.Email,
		Username:  a.Username,
		ShareKey:  keygen.Derive(a.ID, a.Salt()),
		CreatedAt: a.CreatedAt,
	}
}

func toFileDTO(f *model.File) fileDTO {
	return fileDTO{
		ID:            f.ID,
		Name:          f.Name,
		Size:          f.Size,
		Type:          f.Type,
		URL:           f.URL,
		Category:      f.Category,
		RiskLevel:     f.RiskLevel,
		Verdict:       f.Verdict,
		UploadedAt:    f.UploadedAt,
		CipherContent: f.CipherContent,
		IV:            f.IV,
	}
}

func toFileDTOs(files []model.File) []fileDTO {
	out := make([]fileDTO, 0, len(files))
	for i := range files {
		out = append(out, toFileDTO(&files[i]))
	}
	return out
}

func toRequestDTO(r *model.AccessRequest) requestDTO {
	return requestDTO{
		ID:           r.ID,
		FileID:       r.FileID,
		OwnerID:      r.OwnerID,
		RequesterKey: r.RequesterKey,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		FileName:     r.FileName,
	}
}

func toNotificationDTO(n *model.Notification) notificationDTO {
	return notificationDTO{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
