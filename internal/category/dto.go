package category

type CategoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type RenameCategoryRequest struct {
	Name string `json:"name"`
}

type ListCategoriesResponse struct {
	Categories []CategoryView `json:"categories"`
}

type CategoryResponse struct {
	Message  string       `json:"message"`
	Category CategoryView `json:"category"`
}
