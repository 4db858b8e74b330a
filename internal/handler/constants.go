package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteRegister is the registration route.
	RouteRegister = "/register"
	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteAbout is the about page route.
	RouteAbout = "/about"
	// RouteContact is the contact form route.
	RouteContact = "/contact"
	// RoutePost is the post view route pattern.
	RoutePost = "/post/{id}"
	// RouteNewPost is the post creation route.
	RouteNewPost = "/new-post"
	// RouteEditPost is the post edit route pattern.
	RouteEditPost = "/edit-post/{id}"
	// RouteDeletePost is the post delete route pattern.
	RouteDeletePost = "/delete/{id}"
	// RouteDeleteComment is the comment delete route pattern.
	RouteDeleteComment = "/delete-comment/{id}/{postId}"
	// RouteAdminMessages is the contact message review route.
	RouteAdminMessages = "/admin/messages"
	// RouteAdminMessageRead is the mark-read route pattern.
	RouteAdminMessageRead = "/admin/messages/{id}/read"
	// RouteHealth is the liveness probe route.
	RouteHealth = "/healthz"
)

// Flash messages shown to users. Kept as constants so handlers and tests
// agree on the exact wording.
const (
	FlashDuplicateUser  = "User already exists. Try logging in."
	FlashInvalidLogin   = "Invalid email or password."
	FlashLoginToComment = "You need to login or register to comment."
	FlashDuplicateTitle = "A post with that title already exists."
	FlashContactSent    = "Successfully sent your message!"
	FlashContactFailed  = "Could not send your message. Please try again later."
	FlashEmptyComment   = "Comment text is required."
)
