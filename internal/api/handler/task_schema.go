package handler

// taskForm carries the add/edit form fields. Field presence is checked by the
// task service on the raw values, so both fields bind without validation tags.
type taskForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}
