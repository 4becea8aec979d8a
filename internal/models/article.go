package models

// Article is a single blog post. Author holds the creator's username.
type Article struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

// ArticleInput carries validated title/content for create and update.
type ArticleInput struct {
	Title   string
	Content string
}
