package models

import "time"

type User struct {
	ID           string            `json:"id" firestore:"-"`
	Name         string            `json:"name" firestore:"name"`
	PhoneNumber  string            `json:"phoneNumber,omitempty" firestore:"phoneNumber"`
	TelegramID   string            `json:"telegramId,omitempty" firestore:"telegramId"`
	GymMemberIDs map[string]string `json:"gymMemberIds,omitempty" firestore:"gymMemberIds"`
	IsAdmin      bool              `json:"isAdmin" firestore:"isAdmin"`
	AdminGym     string            `json:"adminGym,omitempty" firestore:"adminGym"`
	CreatedAt    time.Time         `json:"createdAt" firestore:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt" firestore:"updatedAt"`
}
