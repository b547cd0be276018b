// Package model holds the task manager rows and the cat document.
package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID       int    `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
}

type Status struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Task struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	StatusID    int     `json:"status_id"`
	UserID      int     `json:"user_id"`
}

// Cat is a document in the cats collection. Name is unique.
type Cat struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Age      int                `bson:"age" json:"age"`
	Features []string           `bson:"features" json:"features"`
}
