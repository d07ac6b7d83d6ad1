package services

import (
	"errors"
	"strings"

	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wedplan/internal/budget"
	apperrors "wedplan/internal/errors"
	"wedplan/internal/models"
	"wedplan/internal/pagination"
)

// vendorService handles vendor-related business logic.
type vendorService struct {
	db *gorm.DB
}

// NewVendorService creates a new VendorServicer.
func NewVendorService(db *gorm.DB) VendorServicer {
	return &vendorService{db: db}
}

// normalizeVendorInput resolves status labels and rejects invalid amounts.
func normalizeVendorInput(input VendorInput) (VendorInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return input, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}

	switch {
	case input.Status == "":
		input.Status = budget.VendorStatusOpen
	case !input.Status.Valid():
		status, ok := budget.ParseVendorStatus(string(input.Status))
		if !ok {
			return input, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown vendor status")
		}
		input.Status = status
	}

	for _, a := range []*decimal.Decimal{input.FinalAmount, input.Deposit} {
		if a != nil && a.IsNegative() {
			return input, apperrors.WithMessage(apperrors.ErrInvalidInput, "amounts cannot be negative")
		}
	}
	return input, nil
}

// CreateVendor adds a vendor to a wedding.
func (s *vendorService) CreateVendor(userID, weddingID string, input VendorInput) (*models.Vendor, error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}

	input, err := normalizeVendorInput(input)
	if err != nil {
		return nil, err
	}

	vendor := &models.Vendor{WeddingID: weddingID}
	applyVendorInput(vendor, input)

	if err := s.db.Create(vendor).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return vendor, nil
}

// GetWeddingVendors returns a paginated, filtered list of the wedding's vendors.
// The name glob is applied in Go after the SQL filters, so matching is
// case-insensitive on every database.
func (s *vendorService) GetWeddingVendors(
	userID, weddingID string,
	page pagination.PageRequest,
	filter VendorFilter,
) (*pagination.PageResponse[models.Vendor], error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}
	page.Defaults()

	base := s.db.Model(&models.Vendor{}).Where("wedding_id = ?", weddingID)
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.Category != "" {
		base = base.Where("LOWER(category) = ?", strings.ToLower(filter.Category))
	}
	order := pagination.Order(page, vendorSortKeys, "created_at")

	if filter.Match != "" {
		var all []models.Vendor
		if err := base.Scopes(order).Find(&all).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		pattern := strings.ToLower(filter.Match)
		matched := make([]models.Vendor, 0, len(all))
		for _, v := range all {
			if glob.Glob(pattern, strings.ToLower(v.Name)) {
				matched = append(matched, v)
			}
		}
		result := pagination.Slice(matched, page)
		return &result, nil
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var vendors []models.Vendor
	if err := base.Scopes(order, pagination.Paginate(page)).Find(&vendors).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(vendors, page.Page, page.PageSize, totalItems)
	return &result, nil
}

var vendorSortKeys = pagination.SortKeys{
	"name":       "name",
	"category":   "category",
	"status":     "status",
	"created_at": "created_at",
}

// GetVendorByID returns a vendor of the wedding.
func (s *vendorService) GetVendorByID(userID, weddingID, vendorID string) (*models.Vendor, error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}
	return s.findVendor(weddingID, vendorID)
}

func (s *vendorService) findVendor(weddingID, vendorID string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := s.db.Where("id = ? AND wedding_id = ?", vendorID, weddingID).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVendorNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &vendor, nil
}

// UpdateVendor replaces every field of a vendor.
func (s *vendorService) UpdateVendor(userID, weddingID, vendorID string, input VendorInput) (*models.Vendor, error) {
	vendor, err := s.GetVendorByID(userID, weddingID, vendorID)
	if err != nil {
		return nil, err
	}

	input, err = normalizeVendorInput(input)
	if err != nil {
		return nil, err
	}
	applyVendorInput(vendor, input)

	if err := s.db.Save(vendor).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return vendor, nil
}

// DeleteVendor soft-deletes a vendor.
func (s *vendorService) DeleteVendor(userID, weddingID, vendorID string) error {
	vendor, err := s.GetVendorByID(userID, weddingID, vendorID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(vendor).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func applyVendorInput(v *models.Vendor, input VendorInput) {
	v.Name = input.Name
	v.Category = input.Category
	v.ContactName = input.ContactName
	v.ContactPhone = input.ContactPhone
	v.ContactEmail = input.ContactEmail
	v.Status = input.Status
	v.FinalAmount = input.FinalAmount
	v.Deposit = input.Deposit
	v.Notes = input.Notes
}
