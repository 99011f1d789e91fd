// Package seed fills a fresh larder with sample entries.
package seed

// Product is a catalog item the generator can stock.
type Product struct {
	Name    string
	Measure string
	// PackSize is the quantity of one unit as bought.
	PackSize int
	// ShelfLifeDays is how long a fresh unit keeps. Zero means it does not
	// expire.
	ShelfLifeDays int
}

// Fridge holds perishables that expire within days or weeks.
var Fridge = []Product{
	{"Milk", "ml", 1000, 7},
	{"Oat milk", "ml", 1000, 10},
	{"Butter", "g", 250, 45},
	{"Cheddar", "g", 200, 30},
	{"Greek yoghurt", "g", 500, 14},
	{"Eggs", "pcs", 6, 21},
	{"Chicken thighs", "g", 500, 3},
	{"Spinach", "g", 200, 5},
	{"Carrots", "g", 1000, 21},
	{"Tofu", "g", 400, 12},
	{"Hummus", "g", 200, 7},
	{"Orange juice", "ml", 1000, 8},
}

// Pantry holds shelf-stable goods, some of which never expire.
var Pantry = []Product{
	{"Rice", "g", 1000, 0},
	{"Spaghetti", "g", 500, 540},
	{"Chopped tomatoes", "g", 400, 720},
	{"Chickpeas", "g", 400, 720},
	{"Peanut butter", "g", 340, 270},
	{"Rolled oats", "g", 1000, 365},
	{"Flour", "g", 1500, 240},
	{"Sugar", "g", 1000, 0},
	{"Olive oil", "ml", 500, 540},
	{"Coffee beans", "g", 250, 180},
	{"Tea bags", "pcs", 80, 720},
	{"Honey", "g", 340, 0},
}

// Staples are counted rather than measured, so they are stored with a
// plain amount.
var Staples = []string{
	"Salt", "Pepper", "Baking soda", "Bay leaves", "Stock cubes", "Matches",
}

// ShoppingNeeds are items commonly found on the shopping list.
var ShoppingNeeds = []Product{
	{"Bananas", "pcs", 6, 6},
	{"Bread", "pcs", 1, 5},
	{"Lemons", "pcs", 4, 20},
	{"Mozzarella", "g", 125, 10},
	{"Basil", "g", 30, 6},
	{"Washing up liquid", "ml", 500, 0},
	{"Apples", "pcs", 6, 28},
	{"Cream", "ml", 300, 8},
}
