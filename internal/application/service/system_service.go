package service

import (
	"github.com/sangkips/tailorshop-api/internal/config"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/internal/domain/garment"
)

// Billing is shown to clients while the deployment is suspended.
type Billing struct {
	MpesaNumber  string `json:"mpesa_number,omitempty"`
	TillNumber   string `json:"till_number,omitempty"`
	SupportPhone string `json:"support_phone,omitempty"`
	Message      string `json:"message"`
}

// Branding is the identity clients render in their chrome.
type Branding struct {
	AppName        string   `json:"app_name"`
	AppSubtitle    string   `json:"app_subtitle"`
	ShopPhone      string   `json:"shop_phone,omitempty"`
	CurrencySymbol string   `json:"currency_symbol"`
	GarmentTypes   []string `json:"garment_types"`
}

// SystemStatus is the public status document.
type SystemStatus struct {
	Status  enum.SystemStatus `json:"status"`
	Billing *Billing          `json:"billing,omitempty"`
}

// SystemService exposes the kill switch and the branding.
type SystemService struct {
	suspended bool
	billing   Billing
	branding  Branding
	catalog   *garment.Catalog
}

// NewSystemService creates a system service from configuration
func NewSystemService(sys config.SystemConfig, brand config.BrandingConfig, catalog *garment.Catalog) *SystemService {
	return &SystemService{
		suspended: sys.Status == enum.SystemSuspended,
		billing: Billing{
			MpesaNumber:  sys.Billing.MpesaNumber,
			TillNumber:   sys.Billing.TillNumber,
			SupportPhone: sys.Billing.SupportPhone,
			Message:      sys.Billing.Message,
		},
		branding: Branding{
			AppName:        brand.AppName,
			AppSubtitle:    brand.AppSubtitle,
			ShopPhone:      brand.ShopPhone,
			CurrencySymbol: brand.CurrencySymbol,
			GarmentTypes:   catalog.Names(),
		},
		catalog: catalog,
	}
}

// IsSuspended reports whether protected routes are switched off.
func (s *SystemService) IsSuspended() bool {
	return s.suspended
}

// Billing returns the payment details shown while suspended.
func (s *SystemService) Billing() Billing {
	return s.billing
}

// Status returns the public status document.
func (s *SystemService) Status() SystemStatus {
	if s.IsSuspended() {
		b := s.billing
		return SystemStatus{Status: enum.SystemSuspended, Billing: &b}
	}
	return SystemStatus{Status: enum.SystemActive}
}

// Branding returns the configured branding.
func (s *SystemService) Branding() Branding {
	return s.branding
}

// Garments returns the garment types with the measurement parts each one takes.
func (s *SystemService) Garments() []garment.Type {
	return s.catalog.Types()
}
