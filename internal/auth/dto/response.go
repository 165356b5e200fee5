package dto

import (
	"time"

	"github.com/wicaksonoadi/magiclink-service/internal/auth/domain"
)

type MessageOutput struct {
	Message string `json:"message"`
}

type MeOutput struct {
	Email         string    `json:"email"`
	Authenticated bool      `json:"authenticated"`
	LoginTime     time.Time `json:"loginTime"`
}

type HealthOutput struct {
	Status   string               `json:"status"`
	Backends domain.BackendStatus `json:"backends"`
}
