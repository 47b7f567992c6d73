package db

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID             string    `json:"id"`
	WalletAddress  string    `json:"walletAddress"`
	Name           *string   `json:"name"`
	Email          *string   `json:"email"`
	ProfilePicture *string   `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"-"`
}

type JobCategory string

const (
	CategoryTrenchCoaching JobCategory = "Trench Coaching"
	CategorySniperGuru     JobCategory = "Sniper Guru"
	CategoryFeeMasterclass JobCategory = "Fee Masterclass"
	CategoryLogoMaker      JobCategory = "Logo Maker"
	CategoryTelegramBotDev JobCategory = "Telegram Bot Developer"
	CategoryWebDeveloper   JobCategory = "Web Developer"
	CategoryOther          JobCategory = "Other"
)

var JobCategories = []JobCategory{
	CategoryTrenchCoaching,
	CategorySniperGuru,
	CategoryFeeMasterclass,
	CategoryLogoMaker,
	CategoryTelegramBotDev,
	CategoryWebDeveloper,
	CategoryOther,
}

func (c JobCategory) Valid() bool {
	for _, known := range JobCategories {
		if c == known {
			return true
		}
	}
	return false
}

type Job struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    JobCategory `json:"category"`
	Salary      string      `json:"salary"`
	ContactInfo string      `json:"contactInfo"`
	Logo        string      `json:"logo"`
	// CreatedBy is empty for jobs with no recorded owner.
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type TokenizedJob struct {
	ID              string    `json:"id"`
	JobID           string    `json:"jobId"`
	SPLTokenAddress string    `json:"splTokenAddress"`
	CreatedBy       string    `json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
}

// JobFilter narrows a job listing. Empty fields do not filter.
type JobFilter struct {
	Search   string
	Category JobCategory
	Limit    int
}

type Claims struct {
	UserID        string `json:"id"`
	WalletAddress string `json:"walletAddress"`
	jwt.RegisteredClaims
}
