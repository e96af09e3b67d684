package models

// DefaultCatalog returns the built-in menu used to seed an empty store and as
// the local fallback when the store cannot be reached. Prices are in KES.
func DefaultCatalog() []MenuItem {
	return []MenuItem{
		// Chapati Meals
		{Name: "Chapati with Beans", Price: 130, Description: "Soft chapati served with delicious cooked beans", Available: true, Category: "Chapati Meals", Image: "/assets/images/chapo-beans.png"},
		{Name: "Chapati with Greengrams", Price: 130, Description: "Fresh chapati with nutritious green gram (ndengu)", Available: true, Category: "Chapati Meals", Image: "/assets/images/chapo-greengrams.jpg"},
		{Name: "Chapati with Matumbo", Price: 150, Description: "Chapati served with well-prepared matumbo (tripe)", Available: true, Category: "Chapati Meals", Image: "/assets/images/chapo-matumbo.jpg"},
		{Name: "Chapati with Beef", Price: 170, Description: "Soft chapati with tender beef stew", Available: true, Category: "Chapati Meals", Image: "/assets/images/chapo-beef.jpg"},
		{Name: "Chapati with Chicken", Price: 180, Description: "Chapati served with flavorful chicken (kuku)", Available: true, Category: "Chapati Meals", Image: "/assets/images/chapo-chicken.jpg"},
		{Name: "Chapati with Eggs", Price: 130, Description: "Chapati with scrambled eggs (mayai)", Available: true, Category: "Chapati Meals", Image: "/assets/images/chapo-eggs.jpg"},
		{Name: "Chapati with Pork", Price: 180, Description: "Chapati served with succulent pork", Available: true, Category: "Chapati Meals", Image: "/assets/images/chapo-pork.jpg"},
		// Rice Meals
		{Name: "Rice with Beans", Price: 130, Description: "Steamed rice served with cooked beans", Available: true, Category: "Rice Meals", Image: "https://images.pexels.com/photos/343871/pexels-photo-343871.jpeg"},
		{Name: "Rice with Greengrams", Price: 130, Description: "White rice with green gram (ndengu)", Available: true, Category: "Rice Meals", Image: "https://images.pexels.com/photos/343871/pexels-photo-343871.jpeg"},
		{Name: "Rice with Matumbo", Price: 150, Description: "Rice served with well-prepared matumbo (tripe)", Available: true, Category: "Rice Meals", Image: "/assets/images/matumbo-rice.jpg"},
		{Name: "Rice with Beef", Price: 170, Description: "Steamed rice with tender beef stew", Available: true, Category: "Rice Meals", Image: "https://images.pexels.com/photos/343871/pexels-photo-343871.jpeg"},
		{Name: "Rice with Chicken", Price: 180, Description: "Rice served with chicken (kuku)", Available: true, Category: "Rice Meals", Image: "/assets/images/rice-chicken.jpg"},
		{Name: "Rice with Eggs", Price: 130, Description: "Rice with scrambled eggs", Available: true, Category: "Rice Meals", Image: "https://images.pexels.com/photos/343871/pexels-photo-343871.jpeg"},
		{Name: "Rice with Pork", Price: 180, Description: "Rice served with pork", Available: true, Category: "Rice Meals", Image: "https://images.pexels.com/photos/343871/pexels-photo-343871.jpeg"},
		// Ugali Meals
		{Name: "Ugali with Matumbo", Price: 150, Description: "Traditional ugali with matumbo (tripe)", Available: true, Category: "Ugali Meals", Image: "https://images.pexels.com/photos/5560763/pexels-photo-5560763.jpeg"},
		{Name: "Ugali with Beef", Price: 170, Description: "Ugali served with beef stew", Available: true, Category: "Ugali Meals", Image: "https://images.pexels.com/photos/5560763/pexels-photo-5560763.jpeg"},
		{Name: "Ugali with Chicken", Price: 180, Description: "Ugali with chicken", Available: true, Category: "Ugali Meals", Image: "https://images.pexels.com/photos/5560763/pexels-photo-5560763.jpeg"},
		{Name: "Ugali with Eggs", Price: 130, Description: "Ugali with eggs", Available: true, Category: "Ugali Meals", Image: "/assets/images/ugali-eggs.jpg"},
		{Name: "Ugali with Pork", Price: 180, Description: "Ugali served with pork", Available: true, Category: "Ugali Meals", Image: "/assets/images/ugali-pork.jpg"},
		{Name: "Ugali with Omena", Price: 130, Description: "Traditional ugali with omena (small fish)", Available: true, Category: "Ugali Meals", Image: "https://images.pexels.com/photos/5560763/pexels-photo-5560763.jpeg"},
		// Special Rice
		{Name: "Pilau", Price: 150, Description: "Aromatic spiced rice (pilau)", Available: true, Category: "Special Rice", Image: "/assets/images/pilau-image.jpg"},
	}
}
