package models

import "github.com/jinzhu/gorm"

type User struct {
	gorm.Model
	Username string `gorm:"unique"`
	Email    string `gorm:"unique"`
	Password string
}

// Article хранится как одна строка: дерево комментариев и теги
// сериализуются в JSON-колонки, чтобы каждая мутация записывала
// весь документ атомарно (одним UPDATE).
type Article struct {
	gorm.Model
	Title    string
	Content  string
	Author   string
	Category string
	Status   string
	Tags     string `gorm:"type:text"`
	Image    string
	Likes    int
	Liked    bool
	Comments string `gorm:"type:text"`
}
