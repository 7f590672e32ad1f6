package model

// NewsItem is a headline with a link to the original article.
type NewsItem struct {
	Headline string `json:"headline"`
	Link     string `json:"link,omitempty"`
}
