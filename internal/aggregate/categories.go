package aggregate

// Category groups related search queries under one page section.
type Category struct {
	Label   string
	Queries []string
}

// Categories returns the fixed set of sections in page order. Query
// order within a category only defines fetch order; results are re-sorted
// by publication time.
func Categories() []Category {
	return []Category{
		{
			Label: "Artificial Intelligence",
			Queries: []string{
				"artificial intelligence",
				"OpenAI OR Anthropic OR DeepMind",
				"large language model OR LLM",
			},
		},
		{
			Label: "Developer Tools",
			Queries: []string{
				"developer tools OR IDE",
				"GitHub OR VS Code OR programming",
				"software development",
			},
		},
		{
			Label: "Tech Industry",
			Queries: []string{
				"tech industry",
				"Apple OR Google OR Microsoft OR Meta",
				"startup funding OR tech stocks",
			},
		},
	}
}
