// internal/infrastructure/database/postgres/seed.go
package postgres

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

type seedData struct {
	menuItems []catalog.MenuItem
	offers    []catalog.Offer
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var seeds = map[string]seedData{
	config.SkinRestaurant: {
		menuItems: []catalog.MenuItem{
			{ID: "1", Name: "Margherita Pizza", Description: "Classic pizza with fresh mozzarella, tomatoes, and basil",
				Price: price("12.99"), Category: "Pizza",
				Image: "https://images.unsplash.com/photo-1604068549290-dea0e4a305ca?w=400&h=300&fit=crop"},
			{ID: "2", Name: "Grilled Salmon", Description: "Fresh Atlantic salmon with seasonal vegetables",
				Price: price("24.99"), Category: "Main Course",
				Image: "https://images.unsplash.com/photo-1467003909585-2f8a72700288?w=400&h=300&fit=crop"},
			{ID: "3", Name: "Caesar Salad", Description: "Crispy romaine lettuce with parmesan and croutons",
				Price: price("9.99"), Category: "Salad",
				Image: "https://images.unsplash.com/photo-1546793665-c74683f339c1?w=400&h=300&fit=crop"},
			{ID: "4", Name: "Beef Burger", Description: "Angus beef patty with cheese, lettuce, and special sauce",
				Price: price("15.99"), Category: "Burgers",
				Image: "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=400&h=300&fit=crop"},
			{ID: "5", Name: "Pasta Carbonara", Description: "Creamy Italian pasta with bacon and parmesan",
				Price: price("14.99"), Category: "Pasta",
				Image: "https://images.unsplash.com/photo-1612874742237-6526221588e3?w=400&h=300&fit=crop"},
			{ID: "6", Name: "Chocolate Lava Cake", Description: "Warm chocolate cake with molten center and vanilla ice cream",
				Price: price("8.99"), Category: "Dessert",
				Image: "https://images.unsplash.com/photo-1624353365286-3f8d62daad51?w=400&h=300&fit=crop"},
		},
		offers: []catalog.Offer{
			{ID: "1", Title: "50% OFF Pizza Week", Description: "Get 50% off on all pizza orders this week only!",
				Discount: price("50"), OriginalPrice: price("25.99"), Active: true,
				Image: "https://images.unsplash.com/photo-1513104890138-7c749659a591?w=800&h=400&fit=crop"},
			{ID: "2", Title: "Family Feast Special", Description: "Complete family meal with appetizers, mains, and desserts",
				Discount: price("30"), OriginalPrice: price("59.99"), Active: true,
				Image: "https://images.unsplash.com/photo-1526367790999-0150786686a2?w=800&h=400&fit=crop"},
			{ID: "3", Title: "Happy Hour Special", Description: "Buy 1 Get 1 Free on selected items from 4-6 PM",
				Discount: price("50"), OriginalPrice: price("19.99"), Active: true,
				Image: "https://images.unsplash.com/photo-1555939594-58d7cb561ad1?w=800&h=400&fit=crop"},
		},
	},
	config.SkinPharmacy: {
		menuItems: []catalog.MenuItem{
			{ID: "1", Name: "Advanced Pain Relief Gel", Description: "Fast-acting topical gel for muscle and joint pain relief",
				DetailPageDescription: "This advanced pain relief gel is formulated with powerful analgesics to provide instant relief from muscle aches, joint pain, and inflammation. Its non-greasy formula absorbs quickly, making it perfect for daily use.",
				Price:                 price("14.99"), Category: "Pain Relief",
				Image: "https://images.unsplash.com/photo-1550572017-edb201a0cb8b?q=80&w=2070&auto=format&fit=crop"},
			{ID: "2", Name: "Multivitamin Complex", Description: "Daily essential vitamins and minerals for overall health",
				DetailPageDescription: "Our comprehensive multivitamin complex supports your immune system, energy levels, and overall well-being. Packed with essential nutrients like Vitamin C, D, and Zinc, it is your daily shield against fatigue.",
				Price:                 price("29.99"), Category: "Vitamins",
				Image: "https://images.unsplash.com/photo-1551241852-51aef9121773?q=80&w=2070&auto=format&fit=crop"},
			{ID: "3", Name: "Digital Thermometer", Description: "Accurate and fast readings with fever alarm",
				DetailPageDescription: "A must-have for every household, this digital thermometer gives precise temperature readings in seconds. Features a fever alarm, memory recall, and a flexible tip for comfort.",
				Price:                 price("19.99"), Category: "Devices",
				Image: "https://images.unsplash.com/photo-1584017911766-d451b3d0e843?q=80&w=2069&auto=format&fit=crop"},
			{ID: "4", Name: "Immunity Booster Pack", Description: "Vitamin C, Zinc, and Elderberry supplement pack",
				DetailPageDescription: "Boost your body's natural defenses with our Immunity Booster Pack. Combining the power of Vitamin C, Zinc, and Elderberry, this supplement is designed to keep you healthy during flu season and beyond.",
				Price:                 price("34.99"), Category: "Immunity",
				Image: "https://plus.unsplash.com/premium_photo-1675896084254-dcb626387e1e?q=80&w=2070&auto=format&fit=crop"},
			{ID: "5", Name: "First Aid Kit Professional", Description: "Comprehensive kit for home and travel emergencies",
				DetailPageDescription: "Be prepared for any emergency with our Professional First Aid Kit. It includes bandages, antiseptics, scissors, and other essential medical supplies, organized in a durable, portable case.",
				Price:                 price("49.99"), Category: "First Aid",
				Image: "https://images.unsplash.com/photo-1603398938378-e54eab446dde?q=80&w=2070&auto=format&fit=crop"},
			{ID: "6", Name: "Probiotic Support", Description: "Advanced digestive health formula",
				DetailPageDescription: "Restore balance to your gut with our Probiotic Support supplement. Formulated with 50 billion CFUs and multiple strains of beneficial bacteria, it promotes healthy digestion and improved nutrient absorption.",
				Price:                 price("24.99"), Category: "Digestion",
				Image: "https://images.unsplash.com/photo-1626425988358-150cc88af133?q=80&w=1974&auto=format&fit=crop"},
		},
		offers: []catalog.Offer{
			{ID: "1", Title: "Vitamin Essentials", Description: "Get 25% off on all daily vitamin supplements!",
				DetailPageDescription: "Take charge of your health with our Vitamin Essentials sale! For a limited time, enjoy a flat 25% discount on our entire range of daily vitamins. Whether you need Vitamin D for immunity or B-Complex for energy, now is the perfect time to stock up.",
				Discount:              price("25"), OriginalPrice: price("39.99"), Active: true,
				Image: "https://images.unsplash.com/photo-1471864190281-a93a3070b6de?q=80&w=2070&auto=format&fit=crop"},
			{ID: "2", Title: "Family Health Bundle", Description: "Complete health check kit and first aid essentials",
				DetailPageDescription: "Ensure your family's safety with our Family Health Bundle. This exclusive package includes a digital thermometer, pulse oximeter, and a fully stocked first aid kit, everything you need to handle minor health concerns at home.",
				Discount:              price("30"), OriginalPrice: price("89.99"), Active: true,
				Image: "https://images.unsplash.com/photo-1631549916768-4119b2e5f926?q=80&w=1979&auto=format&fit=crop"},
			{ID: "3", Title: "Senior Care Special", Description: "Exclusive discounts on supplements for seniors",
				DetailPageDescription: "We care about our seniors! Get special discounts on supplements tailored for joint health, heart support, and energy. Our Senior Care Special ensures you get premium quality health products at affordable prices.",
				Discount:              price("20"), OriginalPrice: price("45.99"), Active: true,
				Image: "https://images.unsplash.com/photo-1576091160399-112ba8d25d1d?q=80&w=2070&auto=format&fit=crop"},
		},
	},
}
