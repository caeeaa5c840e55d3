package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"location-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	settingFormula       = "formula"
	settingMaterielTypes = "types"
)

func (s *Store) readSetting(ctx context.Context, name string, out any) error {
	var setting models.Setting
	err := s.db.WithContext(ctx).First(&setting, "name = ?", name).Error
	if err != nil {
		return fmt.Errorf("setting %q: %w", name, err)
	}
	if err := json.Unmarshal(setting.Data, out); err != nil {
		return fmt.Errorf("setting %q: %w", name, err)
	}
	return nil
}

func (s *Store) writeSetting(ctx context.Context, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("setting %q: %w", name, err)
	}
	db := s.db.WithContext(ctx)

	var setting models.Setting
	err = db.First(&setting, "name = ?", name).Error
	switch {
	case err == nil:
		return db.Model(&setting).Update("data", datatypes.JSON(data)).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(&models.Setting{Name: name, Data: datatypes.JSON(data)}).Error
	default:
		return fmt.Errorf("setting %q: %w", name, err)
	}
}

// LocFormulas returns the rental pricing formula.
func (s *Store) LocFormulas(ctx context.Context) (models.PricingFormula, error) {
	var formula models.PricingFormula
	if err := s.readSetting(ctx, settingFormula, &formula); err != nil {
		return formula, err
	}
	return formula, nil
}

// SetLocFormulas replaces the rental pricing formula.
func (s *Store) SetLocFormulas(ctx context.Context, formula models.PricingFormula) error {
	return s.writeSetting(ctx, settingFormula, formula)
}

// MaterielTypes returns the configured catalog categories.
func (s *Store) MaterielTypes(ctx context.Context) ([]string, error) {
	var types []string
	if err := s.readSetting(ctx, settingMaterielTypes, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// SetMaterielTypes replaces the configured catalog categories.
func (s *Store) SetMaterielTypes(ctx context.Context, types []string) error {
	return s.writeSetting(ctx, settingMaterielTypes, types)
}
