package service

import (
	"context"
	"strconv"

	"github.com/craftedcommune/cafe/internal/repo"
)

const (
	KeySiteName         = "site_name"
	KeyPointsRatio      = "points_ratio"
	KeyTaxRate          = "tax_rate"
	KeyCurrencySymbol   = "currency_symbol"
	KeyCarouselAutoplay = "carousel_autoplay"
	KeyCarouselInterval = "carousel_interval"
)

// Settings is the typed view over the key/value settings table. Values that
// fail to parse fall back to their defaults.
type Settings struct {
	SiteName         string  `json:"site_name"`
	PointsRatio      int     `json:"points_ratio"`
	TaxRate          float64 `json:"tax_rate"`
	CurrencySymbol   string  `json:"currency_symbol"`
	CarouselAutoplay bool    `json:"carousel_autoplay"`
	CarouselInterval int     `json:"carousel_interval"`
}

func DefaultSettings() Settings {
	return Settings{
		SiteName:         "Crafted Commune",
		PointsRatio:      DefaultPointsRatio,
		TaxRate:          0,
		CurrencySymbol:   "₱",
		CarouselAutoplay: true,
		CarouselInterval: 5000,
	}
}

func LoadSettings(ctx context.Context, r *repo.GormRepo) (Settings, error) {
	s := DefaultSettings()

	raw, err := r.GetSetting(ctx, KeySiteName, s.SiteName)
	if err != nil {
		return s, err
	}
	s.SiteName = raw

	if raw, err = r.GetSetting(ctx, KeyPointsRatio, ""); err != nil {
		return s, err
	}
	if v, convErr := strconv.Atoi(raw); convErr == nil && v > 0 {
		s.PointsRatio = v
	}

	if raw, err = r.GetSetting(ctx, KeyTaxRate, ""); err != nil {
		return s, err
	}
	if v, convErr := strconv.ParseFloat(raw, 64); convErr == nil && v >= 0 {
		s.TaxRate = v
	}

	if raw, err = r.GetSetting(ctx, KeyCurrencySymbol, s.CurrencySymbol); err != nil {
		return s, err
	}
	s.CurrencySymbol = raw

	if raw, err = r.GetSetting(ctx, KeyCarouselAutoplay, ""); err != nil {
		return s, err
	}
	if raw != "" {
		s.CarouselAutoplay = raw == "1" || raw == "true"
	}

	if raw, err = r.GetSetting(ctx, KeyCarouselInterval, ""); err != nil {
		return s, err
	}
	if v, convErr := strconv.Atoi(raw); convErr == nil && v > 0 {
		s.CarouselInterval = v
	}

	return s, nil
}
