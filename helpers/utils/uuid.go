package utils

import "github.com/google/uuid"

// GenerateUUID sinh UUID v4 dạng string, dùng làm id cho batch job
func GenerateUUID() string {
	return uuid.NewString()
}
