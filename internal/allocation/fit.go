package allocation

import "github.com/m04kA/SMC-RoomAllocationService/internal/domain"

// WasteRatio доля незанятых мест (capacity - required) / capacity
func WasteRatio(capacity, required int) float64 {
	if capacity <= 0 {
		return 0
	}
	return float64(capacity-required) / float64(capacity)
}

// FitQualityFor переводит долю незанятых мест в описательную полосу
func FitQualityFor(wasteRatio float64) domain.FitQuality {
	switch {
	case wasteRatio <= domain.PerfectFitMaxWaste:
		return domain.FitQuality{Label: domain.LabelPerfectFit, Band: domain.FitBandBestMatch}
	case wasteRatio <= domain.GoodFitMaxWaste:
		return domain.FitQuality{Label: domain.LabelGoodFit, Band: domain.FitBandRecommended}
	case wasteRatio <= domain.SlightlyLargeMaxWaste:
		return domain.FitQuality{Label: domain.LabelSlightlyLarge, Band: domain.FitBandAlternative}
	default:
		return domain.FitQuality{Label: domain.LabelOversized, Band: domain.FitBandLastResort}
	}
}
