package models

// Request payloads for the callable pass procedures.

type UpdateProfileRequest struct {
	Name         string            `json:"name"`
	PhoneNumber  string            `json:"phoneNumber,omitempty"`
	TelegramID   string            `json:"telegramId,omitempty"`
	GymMemberIDs map[string]string `json:"gymMemberIds,omitempty"`
}

type AddAdminPassRequest struct {
	GymID          string  `json:"gymId"`
	GymDisplayName string  `json:"gymDisplayName"`
	PassName       string  `json:"passName"`
	Count          int64   `json:"count"`
	Price          float64 `json:"price"`
	Duration       int     `json:"duration"`
}

type DeleteAdminPassRequest struct {
	AdminPassID string `json:"adminPassId"`
}

type SellAdminPassRequest struct {
	AdminPassID     string `json:"adminPassId"`
	RecipientUserID string `json:"recipientUserId"`
}

type TransferPassRequest struct {
	FromUserID string  `json:"fromUserId"`
	ToUserID   string  `json:"toUserId"`
	PassID     string  `json:"passId"`
	PassType   string  `json:"passType"`
	Count      int64   `json:"count"`
	Price      float64 `json:"price,omitempty"`
}

type ListPassForMarketRequest struct {
	PrivatePassID string  `json:"privatePassId"`
	Count         int64   `json:"count"`
	Price         float64 `json:"price"`
	Remarks       string  `json:"remarks,omitempty"`
}

type UnlistPassRequest struct {
	MarketPassID string `json:"marketPassId"`
}

type SellMarketPassRequest struct {
	FromUserID string  `json:"fromUserId"`
	ToUserID   string  `json:"toUserId"`
	PassID     string  `json:"passId"`
	Count      int64   `json:"count"`
	Price      float64 `json:"price,omitempty"`
}

type ConsumePassRequest struct {
	UserID string `json:"userId"`
	PassID string `json:"passId"`
	Count  int64  `json:"count"`
}

type RemovePassRequest struct {
	PassID   string `json:"passId"`
	PassType string `json:"passType"`
}
