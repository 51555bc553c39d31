package recipe

// Collection is the store name of the recipe collection.
const Collection = "recipes"

// Recipe is a shared family recipe. Records are immutable once stored.
type Recipe struct {
	ID           int64  `json:"id" bson:"id"`
	Name         string `json:"name" bson:"name"`
	Author       string `json:"author" bson:"author"`
	Ingredients  string `json:"ingredients" bson:"ingredients"`
	Instructions string `json:"instructions" bson:"instructions"`
	Date         string `json:"date" bson:"date"`
	CreatedAt    string `json:"createdAt" bson:"createdAt"`
}

// Input carries the visitor-supplied fields of a new recipe.
type Input struct {
	Name         string `json:"name"`
	Author       string `json:"author"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}
