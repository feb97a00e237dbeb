package repo

import "github.com/Skotchmaster/kaos_shop/internal/models"

var (
	black = models.Color{Name: "Hitam", Value: "black"}
	gray  = models.Color{Name: "Abu-Abu", Value: "gray"}
	white = models.Color{Name: "Putih", Value: "white"}
)

const (
	loremMinggir = "Lorem ipsum dolor sit amet consectetur. Quis tempor eget vestibulum facilisi. Massa vel egit ridiculus scelerisque elit ligula morbi adipiscing."
	loremTees    = "Produnt massa vitae consectetur tempor gravida blandit sollicitudin. Venenatis pretium dictum mi tempor donec in."
)

// SeedProducts returns a fresh copy of the storefront catalog in display order.
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID:            "1",
			Position:      1,
			Name:          "Kaos Minggir Lu Miskin",
			Description:   loremMinggir,
			Price:         129000,
			OriginalPrice: 150000,
			Colors:        []models.Color{black, gray, white},
			Sizes:         []string{"S", "M", "L", "XL", "XXL"},
			Stock:         5,
			Images: []string{
				"/placeholder.svg?height=500&width=400",
				"/placeholder.svg?height=500&width=400&text=Image2",
				"/placeholder.svg?height=500&width=400&text=Image3",
			},
		},
		{
			ID:            "2",
			Position:      2,
			Name:          "Kaos NASA",
			Description:   loremTees,
			Price:         139000,
			OriginalPrice: 160000,
			Colors:        []models.Color{black, gray, white},
			Sizes:         []string{"S", "M", "L", "XL"},
			Stock:         8,
			Images: []string{
				"/placeholder.svg?height=500&width=400&text=NASA",
				"/placeholder.svg?height=500&width=400&text=NASA2",
				"/placeholder.svg?height=500&width=400&text=NASA3",
			},
		},
		{
			ID:            "3",
			Position:      3,
			Name:          "Kaos Nirvana",
			Description:   loremTees,
			Price:         149000,
			OriginalPrice: 170000,
			Colors:        []models.Color{black, gray},
			Sizes:         []string{"S", "M", "L", "XL", "XXL"},
			Stock:         3,
			Images: []string{
				"/placeholder.svg?height=500&width=400&text=Nirvana",
				"/placeholder.svg?height=500&width=400&text=Nirvana2",
			},
		},
	}
}

// StoreProfile is the shop shown on the home view.
func StoreProfile() models.StoreProfile {
	return models.StoreProfile{
		Name:    "Kaos Gaul Ishowspeed Minggir Lu Miskin",
		Address: "Jalan Buah Batu No. 105, Kecamatan Turangga, Kota Bandung",
		OpeningHours: []models.OpeningHours{
			{Days: "Senin - Jumat", Hours: "22:00 - 10:00"},
			{Days: "Sabtu", Hours: "22:00 - 10:00"},
			{Days: "Minggu", Hours: "Tutup"},
		},
	}
}
