package handlers

// HandlerBundle groups the endpoint handlers for route registration.
type HandlerBundle struct {
	Chat   *ChatHandler
	Upload *UploadHandler
	Admin  *AdminHandler
}
