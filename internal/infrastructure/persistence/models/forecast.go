package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard/backend/internal/domain/forecast"
)

// ExpenseTemplateModel is the persistence model for operating expense templates
type ExpenseTemplateModel struct {
	BrandModel
	Name       string          `gorm:"type:varchar(200);not null"`
	Category   string          `gorm:"type:varchar(100)"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Frequency  string          `gorm:"type:varchar(20);not null;index"`
	PaymentDay int             `gorm:"not null;default:0"`
	StartDate  time.Time       `gorm:"type:date;not null"`
	EndDate    *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (ExpenseTemplateModel) TableName() string {
	return "expense_templates"
}

// ToDomain converts the persistence model to a domain expense template
func (m *ExpenseTemplateModel) ToDomain() forecast.ExpenseTemplate {
	return forecast.ExpenseTemplate{
		BrandEntity: m.ToDomainBrandEntity(),
		Name:        m.Name,
		Category:    m.Category,
		Amount:      m.Amount,
		Frequency:   forecast.ExpenseFrequency(m.Frequency),
		PaymentDay:  m.PaymentDay,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
	}
}

// PurchaseObligationModel is the persistence model for supplier payment
// obligations derived from purchase orders
type PurchaseObligationModel struct {
	BrandModel
	SupplierName   string          `gorm:"type:varchar(200);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DueDate        *time.Time      `gorm:"type:date;index"`
	PaymentStatus  string          `gorm:"type:varchar(20);not null;default:'UNPAID';index"`
	WorkflowStatus string          `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
}

// TableName returns the table name for GORM
func (PurchaseObligationModel) TableName() string {
	return "purchase_obligations"
}

// ToDomain converts the persistence model to a domain purchase obligation
func (m *PurchaseObligationModel) ToDomain() forecast.PurchaseObligation {
	return forecast.PurchaseObligation{
		BrandEntity:    m.ToDomainBrandEntity(),
		SupplierName:   m.SupplierName,
		TotalAmount:    m.TotalAmount,
		DueDate:        m.DueDate,
		PaymentStatus:  forecast.ObligationPaymentStatus(m.PaymentStatus),
		WorkflowStatus: forecast.ObligationWorkflowStatus(m.WorkflowStatus),
	}
}
