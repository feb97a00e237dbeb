package models

type Color struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Product struct {
	ID            string   `gorm:"primaryKey"                 json:"id"`
	Position      int      `gorm:"not null;index"             json:"-"`
	Name          string   `gorm:"not null"                   json:"name"`
	Description   string   `gorm:"not null"                   json:"description"`
	Price         int64    `gorm:"not null;check:price>=0"    json:"price"`
	OriginalPrice int64    `gorm:"not null"                   json:"originalPrice"`
	Colors        []Color  `gorm:"type:text;serializer:json"  json:"colors"`
	Sizes         []string `gorm:"type:text;serializer:json"  json:"sizes"`
	Stock         int      `gorm:"not null;check:stock>=0"    json:"stock"`
	Images        []string `gorm:"type:text;serializer:json"  json:"images"`
}

func (Product) TableName() string {
	return "products"
}

// FindColor matches s against each color's display name or internal value.
func (p *Product) FindColor(s string) (Color, bool) {
	for _, c := range p.Colors {
		if c.Name == s || c.Value == s {
			return c, true
		}
	}
	return Color{}, false
}

func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type OpeningHours struct {
	Days  string `json:"days"`
	Hours string `json:"hours"`
}

type StoreProfile struct {
	Name         string         `json:"name"`
	Address      string         `json:"address"`
	OpeningHours []OpeningHours `json:"openingHours"`
}
