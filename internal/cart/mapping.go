package cart

import "github.com/dmitrijs2005/foodorder/internal/catalog"

// FromCatalog maps a menu item to the product stored in a cart line.
// The served image URL wins over the raw storage key.
func FromCatalog(it catalog.Item) Product {
	ref := it.ImageURL
	if ref == "" {
		ref = it.ImageKey
	}
	return Product{
		ID:          it.ID,
		Name:        it.Name,
		UnitPrice:   it.Price,
		ImageRef:    ref,
		Category:    it.Category,
		Description: it.Description,
		Frozen:      it.IsFrozen,
	}
}
