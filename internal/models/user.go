package models

// User is keyed by username: the document _id is the username itself,
// which gives us the uniqueness guarantee for free.
type User struct {
	Username     string `bson:"_id" json:"username"`
	Salt         string `bson:"salt" json:"-"`
	PasswordHash string `bson:"passwordhash" json:"-"`
}
