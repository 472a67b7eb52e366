package catalog

import "errors"

var (
	// ErrCatalogUnavailable возвращается, когда инвентарь не удалось прочитать
	ErrCatalogUnavailable = errors.New("catalog: inventory unavailable")
)
