// internal/domain/catalog/seed.go
package catalog

// defaultCategories returns the storefront's fixed category list.
func defaultCategories() []Category {
	return []Category{
		{ID: "fruits", Name: "Fruits & Vegetables", Icon: "🍎", Description: "Fresh fruits and vegetables"},
		{ID: "dairy", Name: "Dairy & Eggs", Icon: "🥛", Description: "Milk, cheese, eggs, and more"},
		{ID: "meat", Name: "Meat & Fish", Icon: "🥩", Description: "Fresh meat and seafood"},
		{ID: "bakery", Name: "Bakery", Icon: "🍞", Description: "Bread, pastries, and baked goods"},
		{ID: "beverages", Name: "Beverages", Icon: "🥤", Description: "Drinks and beverages"},
		{ID: "snacks", Name: "Snacks", Icon: "🍿", Description: "Chips, nuts, and snacks"},
		{ID: "beauty", Name: "Beauty & Personal Care", Icon: "💄", Description: "Cosmetics and personal care"},
		{ID: "baby", Name: "Baby Care", Icon: "👶", Description: "Baby products and essentials"},
		{ID: "medicine", Name: "Medicine & Health", Icon: "💊", Description: "Medicines and health products"},
		{ID: "home", Name: "Home & Kitchen", Icon: "🏠", Description: "Home and kitchen essentials"},
		{ID: "office", Name: "Office Supplies", Icon: "📎", Description: "Office and school supplies"},
		{ID: "gardening", Name: "Gardening", Icon: "🌱", Description: "Gardening tools and supplies"},
	}
}

// defaultProducts returns the seed inventory the catalog starts from when
// the store slot is empty.
func defaultProducts() []Product {
	return []Product{
		{
			ID: "prod_001", Name: "Fresh Apples", Category: "fruits",
			Price: 1.30, Currency: "USD", Unit: "1 KG",
			Image:       "https://i.imgur.com/vUJ2JKU.png",
			Description: "Crispy and sweet fresh apples",
			Stock:       100, Rating: 4.5, Reviews: 128, Offer: "10%",
			Tags:      []string{"fresh", "organic", "fruit"},
			Nutrition: &NutritionFacts{Calories: 52, Protein: 0.3, Carbs: 14, Fat: 0.2},
		},
		{
			ID: "prod_002", Name: "Fresh Red Chili", Category: "fruits",
			Price: 1.05, Currency: "USD", Unit: "1 KG",
			Image:       "https://i.imgur.com/rFhSMZN.png",
			Description: "Spicy and fresh red chilies",
			Stock:       75, Rating: 4.2, Reviews: 89,
			Tags:      []string{"spicy", "fresh", "vegetable"},
			Nutrition: &NutritionFacts{Calories: 40, Protein: 1.9, Carbs: 9, Fat: 0.4},
		},
		{
			ID: "prod_003", Name: "Fresh Onions", Category: "fruits",
			Price: 0.65, Currency: "USD", Unit: "1 KG",
			Image:       "https://i.imgur.com/sGLggWL.jpg",
			Description: "Fresh and flavorful onions",
			Stock:       150, Rating: 4.3, Reviews: 156, Offer: "5%",
			Tags:      []string{"fresh", "vegetable", "cooking"},
			Nutrition: &NutritionFacts{Calories: 40, Protein: 1.1, Carbs: 9.3, Fat: 0.1},
		},
		{
			ID: "prod_004", Name: "Fresh Potatoes", Category: "fruits",
			Price: 0.80, Currency: "USD", Unit: "1 KG",
			Image:       "https://i.imgur.com/WFjH6ui.png",
			Description: "High quality fresh potatoes",
			Stock:       200, Rating: 4.4, Reviews: 203,
			Tags:      []string{"fresh", "vegetable", "staple"},
			Nutrition: &NutritionFacts{Calories: 77, Protein: 2, Carbs: 17, Fat: 0.1},
		},
		{
			ID: "prod_005", Name: "Fresh Garlic", Category: "fruits",
			Price: 0.65, Currency: "USD", Unit: "1 KG",
			Image:       "https://i.imgur.com/XVLuy2J.png",
			Description: "Aromatic fresh garlic bulbs",
			Stock:       80, Rating: 4.6, Reviews: 167, Offer: "15%",
			Tags:      []string{"fresh", "aromatic", "vegetable"},
			Nutrition: &NutritionFacts{Calories: 149, Protein: 6.4, Carbs: 33, Fat: 0.5},
		},
		{
			ID: "prod_006", Name: "Fresh Tomatoes", Category: "fruits",
			Price: 1.05, Currency: "USD", Unit: "1 KG",
			Image:       "https://i.imgur.com/8l5hDhS.png",
			Description: "Ripe and juicy fresh tomatoes",
			Stock:       120, Rating: 4.5, Reviews: 189,
			Tags:      []string{"fresh", "juicy", "vegetable"},
			Nutrition: &NutritionFacts{Calories: 18, Protein: 0.9, Carbs: 3.9, Fat: 0.2},
		},
		{
			ID: "prod_007", Name: "Baby Cream", Category: "beauty",
			Price: 3.50, Currency: "USD", Unit: "100ml",
			Image:       "https://i.imgur.com/9QqB6iO.jpg",
			Description: "Gentle baby cream for sensitive skin",
			Stock:       50, Rating: 4.7, Reviews: 234, Offer: "20%",
			Tags: []string{"baby", "gentle", "moisturizing"},
		},
		{
			ID: "prod_008", Name: "Baby Powder", Category: "beauty",
			Price: 2.50, Currency: "USD", Unit: "200g",
			Image:       "https://i.imgur.com/3kP5e9u.jpg",
			Description: "Soft and gentle baby powder",
			Stock:       60, Rating: 4.4, Reviews: 178,
			Tags: []string{"baby", "gentle", "fresh"},
		},
		{
			ID: "prod_009", Name: "Baby Shampoo", Category: "beauty",
			Price: 4.20, Currency: "USD", Unit: "250ml",
			Image:       "https://i.imgur.com/7mN8d2f.jpg",
			Description: "Tear-free baby shampoo",
			Stock:       45, Rating: 4.6, Reviews: 198, Offer: "10%",
			Tags: []string{"baby", "tear-free", "gentle"},
		},
		{
			ID: "prod_010", Name: "Face Cream", Category: "beauty",
			Price: 6.00, Currency: "USD", Unit: "50ml",
			Image:       "https://i.imgur.com/8jK2LmP.jpg",
			Description: "Nourishing face cream for all skin types",
			Stock:       35, Rating: 4.5, Reviews: 267, Offer: "25%",
			Tags: []string{"moisturizing", "nourishing", "anti-aging"},
		},
		{
			ID: "prod_011", Name: "Lip Balm", Category: "beauty",
			Price: 2.00, Currency: "USD", Unit: "10g",
			Image:       "https://i.imgur.com/5mN3qRt.jpg",
			Description: "Hydrating lip balm with SPF",
			Stock:       80, Rating: 4.3, Reviews: 145,
			Tags: []string{"hydrating", "SPF", "lip care"},
		},
		{
			ID: "prod_012", Name: "Moisturizer", Category: "beauty",
			Price: 5.00, Currency: "USD", Unit: "100ml",
			Image:       "https://i.imgur.com/2kL9mNp.jpg",
			Description: "Daily moisturizer for hydrated skin",
			Stock:       40, Rating: 4.6, Reviews: 289, Offer: "15%",
			Tags: []string{"daily", "hydrating", "lightweight"},
		},
		{
			ID: "prod_013", Name: "Chakki Fresh Atta", Category: "fruits",
			Price: 4.55, Currency: "USD", Unit: "5 KG",
			Image:       "https://i.imgur.com/oYbYgGQ.jpg",
			Description: "Whole wheat flour for fresh rotis",
			Stock:       30, Rating: 4.7, Reviews: 312, Offer: "50%",
			Tags:      []string{"whole wheat", "fresh", "staple"},
			Nutrition: &NutritionFacts{Calories: 340, Protein: 12, Carbs: 72, Fat: 2.5},
		},
		{
			ID: "prod_014", Name: "Maggie Noodles", Category: "snacks",
			Price: 0.13, Currency: "USD", Unit: "70g",
			Image:       "https://i.imgur.com/mHmTIxp.jpg",
			Description: "Quick and delicious instant noodles",
			Stock:       200, Rating: 4.1, Reviews: 456, Offer: "20%",
			Tags:      []string{"instant", "quick", "snack"},
			Nutrition: &NutritionFacts{Calories: 285, Protein: 7, Carbs: 41, Fat: 11},
		},
		{
			ID: "prod_015", Name: "Stapler", Category: "office",
			Price: 2.80, Currency: "USD", Unit: "1 piece",
			Image:       "https://i.imgur.com/4kL9mNp.jpg",
			Description: "Heavy duty stapler for office use",
			Stock:       25, Rating: 4.2, Reviews: 89,
			Tags: []string{"office", "heavy duty", "essential"},
		},
		{
			ID: "prod_016", Name: "Pencils Set", Category: "office",
			Price: 4.00, Currency: "USD", Unit: "12 pieces",
			Image:       "https://i.imgur.com/6mN3qRt.jpg",
			Description: "High quality HB pencils set",
			Stock:       40, Rating: 4.4, Reviews: 123, Offer: "10%",
			Tags: []string{"stationery", "school", "office"},
		},
		{
			ID: "prod_017", Name: "Ball Pens", Category: "office",
			Price: 2.20, Currency: "USD", Unit: "10 pieces",
			Image:       "https://i.imgur.com/8kL2LmP.jpg",
			Description: "Smooth writing ball pens",
			Stock:       60, Rating: 4.3, Reviews: 167,
			Tags: []string{"stationery", "smooth", "reliable"},
		},
		{
			ID: "prod_018", Name: "Cetirizine Tablets", Category: "medicine",
			Price: 1.10, Currency: "USD", Unit: "10 tablets",
			Image:       "https://i.imgur.com/9QqB6iO.jpg",
			Description: "Allergy relief cetirizine tablets",
			Stock:       100, Rating: 4.5, Reviews: 234,
			Tags: []string{"allergy", "medicine", "relief"},
		},
		{
			ID: "prod_019", Name: "Dolo Paracetamol", Category: "medicine",
			Price: 1.25, Currency: "USD", Unit: "15 tablets",
			Image:       "https://i.imgur.com/3kP5e9u.jpg",
			Description: "Fever and pain relief tablets",
			Stock:       120, Rating: 4.6, Reviews: 289, Offer: "5%",
			Tags: []string{"fever", "pain relief", "medicine"},
		},
		{
			ID: "prod_020", Name: "Organic Manure", Category: "gardening",
			Price: 6.00, Currency: "USD", Unit: "5 KG",
			Image:       "https://i.imgur.com/7mN8d2f.jpg",
			Description: "Organic manure for healthy plants",
			Stock:       20, Rating: 4.4, Reviews: 78, Offer: "20%",
			Tags: []string{"organic", "gardening", "fertilizer"},
		},
	}
}
