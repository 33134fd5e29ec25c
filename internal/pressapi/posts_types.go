package pressapi

// PostParams is the publish payload for create and update.
type PostParams struct {
	Path        string   `json:"path"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	BodyMarkdown string  `json:"body_markdown"`
}

// PostResponse is the remote identity returned on a successful publish.
type PostResponse struct {
	RemoteID  string `json:"id"`
	RemoteURL string `json:"url"`
}
