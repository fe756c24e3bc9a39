// internal/domain/catalog/offer_service.go
package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ListOffers returns offers in insertion order, optionally only active ones
func (s *Service) ListOffers(ctx context.Context, activeOnly bool) ([]Offer, error) {
	var offers []Offer
	query := s.db.WithContext(ctx).Order("created_at, id")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

// GetOffer retrieves an offer by id regardless of its active flag
func (s *Service) GetOffer(ctx context.Context, id string) (*Offer, error) {
	var offer Offer
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&offer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offer %s: %w", id, err)
	}
	return &offer, nil
}

// CreateOffer inserts a new offer with a caller supplied id
func (s *Service) CreateOffer(ctx context.Context, offer *Offer) error {
	if err := offer.Validate(); err != nil {
		return err
	}
	// Select("*") so a false Active is written instead of skipped as a zero value
	if err := s.db.WithContext(ctx).Select("*").Create(offer).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("failed to create offer: %w", err)
	}

	s.log.WithField("offer_id", offer.ID).Info("offer created")
	return nil
}

// UpdateOffer applies a partial update and returns the affected row count
func (s *Service) UpdateOffer(ctx context.Context, id string, patch OfferPatch) (int64, error) {
	updates, err := patch.updates()
	if err != nil {
		return 0, err
	}
	return s.update(ctx, &Offer{}, id, updates)
}

// DeleteOffer removes an offer and returns the affected row count
func (s *Service) DeleteOffer(ctx context.Context, id string) (int64, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Offer{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete offer %s: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}

// CountActiveOffers returns the number of offers currently shown to customers
func (s *Service) CountActiveOffers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Offer{}).Where("active = ?", true).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count offers: %w", err)
	}
	return n, nil
}
