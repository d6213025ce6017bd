package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	FormatAudioBook = "AUDIO_BOOK"
	FormatEBook     = "E_BOOK"
	FormatHardCover = "HARD_COVER"
	FormatPaperBack = "PAPER_BACK"
)

func ValidBookFormat(f string) bool {
	switch f {
	case FormatAudioBook, FormatEBook, FormatHardCover, FormatPaperBack:
		return true
	}
	return false
}

type Book struct {
	BookID      uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text;not null"`
	Author      string `gorm:"size:255;not null"`
	Genre       string `gorm:"size:128;not null"`
	Series      string `gorm:"size:255"`
	Publisher   string `gorm:"size:255;not null"`
	Format      string `gorm:"size:16;not null"` // AUDIO_BOOK, E_BOOK, HARD_COVER, PAPER_BACK

	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock    int             `gorm:"not null;default:0"`
	Isbn     string          `gorm:"size:32;uniqueIndex;not null"`
	ImageURL string          `gorm:"size:512"`
	IsActive bool            `gorm:"not null;default:true"`

	// admin who created the record
	UserID uint `gorm:"index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Review struct {
	ID uint `gorm:"primaryKey"`
	// FK → user.id; one review per user per book
	UserID uint `gorm:"not null;uniqueIndex:idx_review_user_book"`
	// FK → book.book_id
	BookID        uint   `gorm:"not null;uniqueIndex:idx_review_user_book;index"`
	Rating        int    `gorm:"not null"` // 1..5
	ReviewContent string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
