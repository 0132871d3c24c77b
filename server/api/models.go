package api

type Chunk struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type SearchResult struct {
	ID string `json:"id"`

	FileName     string `json:"fileName,omitempty"`
	SectionTitle string `json:"sectionTitle,omitempty"`

	Content string `json:"content,omitempty"`

	Score      float32  `json:"score"`
	Highlights []string `json:"highlights,omitempty"`
}
