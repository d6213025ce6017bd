package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Envelope is the uniform success body: {statusCode, success, data, message}.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}

// ErrorEnvelope is the uniform error body.
type ErrorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
}

func OK(status int, data any, message string) Envelope {
	return Envelope{StatusCode: status, Success: true, Data: data, Message: message}
}

// -------- auth --------

type RegisterRequest struct {
	Email    string         `json:"email"`
	UserName string         `json:"userName"`
	FullName string         `json:"fullName"`
	Password string         `json:"password"`
	Phone    string         `json:"phone"`
	Address  AddressRequest `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResendVerificationRequest struct {
	Email string `json:"email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

type RenewTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type UserResponse struct {
	ID              uint   `json:"id"`
	Email           string `json:"email"`
	UserName        string `json:"userName"`
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	Role            string `json:"role"`
	IsEmailVerified bool   `json:"isEmailVerified"`
}

type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ApiKey       string       `json:"apiKey"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type ApiKeyResponse struct {
	ApiKey string `json:"apiKey"`
}

// -------- addresses --------

type AddressRequest struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Country      string `json:"country"`
	IsDefault    bool   `json:"isDefault"`
}

// MissingFields lists the required address fields absent from the request.
func (a AddressRequest) MissingFields() []string {
	var missing []string
	if a.AddressLine1 == "" {
		missing = append(missing, "addressLine1")
	}
	if a.City == "" {
		missing = append(missing, "city")
	}
	if a.State == "" {
		missing = append(missing, "state")
	}
	if a.Pincode == "" {
		missing = append(missing, "pincode")
	}
	if a.Country == "" {
		missing = append(missing, "country")
	}
	return missing
}

// -------- books --------

type BookRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Author      string          `json:"author"`
	Genre       string          `json:"genre"`
	Series      string          `json:"series"`
	Publisher   string          `json:"publisher"`
	Format      string          `json:"format"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Isbn        string          `json:"isbn"`
	ImageURL    string          `json:"imageUrl"`
}

type BookListResponse struct {
	Books      any   `json:"books"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
}

// -------- orders --------

type CreateOrderRequest struct {
	AddressID uint   `json:"addressId"`
	BookIDs   []uint `json:"bookIds"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// -------- reviews --------

type ReviewRequest struct {
	Rating        int    `json:"rating"`
	ReviewContent string `json:"reviewContent"`
}

// -------- payments --------

type CreatePaymentRequest struct {
	OrderID uint   `json:"orderId"`
	Method  string `json:"method"`
}

type PaymentResponse struct {
	ID        uint            `json:"id"`
	OrderID   uint            `json:"orderId"`
	Status    string          `json:"status"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	ReceiptID string          `json:"receiptId"`
	CreatedAt time.Time       `json:"createdAt"`
}

// -------- mail jobs --------

const (
	MailKindVerification  = "verification"
	MailKindPasswordReset = "password_reset"
)

// MailJob is the message published to the mail queue.
type MailJob struct {
	Kind     string `json:"kind"` // verification, password_reset
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Token    string `json:"token"`
}
