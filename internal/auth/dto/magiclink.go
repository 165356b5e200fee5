package dto

type MagicLinkInput struct {
	Email     string `json:"email"`
	IPAddress string `json:"-"`
}
