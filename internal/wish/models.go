package wish

// Collection is the store name of the wish collection.
const Collection = "wishes"

// Wish is a short well-wish left by a visitor.
type Wish struct {
	ID        int64  `json:"id" bson:"id"`
	Author    string `json:"author" bson:"author"`
	Text      string `json:"text" bson:"text"`
	Date      string `json:"date" bson:"date"`
	CreatedAt string `json:"createdAt" bson:"createdAt"`
}

type Input struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}
