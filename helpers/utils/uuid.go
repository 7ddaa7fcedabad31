package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateUUID tạo UUID v4
func GenerateUUID() string {
	return uuid.NewString()
}

// GenerateShortID tạo ID ngắn (8 ký tự)
func GenerateShortID() string {
	id := uuid.New()
	return fmt.Sprintf("%x", id[:4])
}
