package main

// Page titles and user-facing copy that does not live in the content file.
var (
	TitleHome         = "Home"
	TitleAbout        = "About"
	TitleProjects     = "Projects"
	TitleBlog         = "Blog"
	TitlePublications = "Publications"
	TitleContact      = "Contact Me"
	TitlePrivacy      = "Privacy Policy"
	TitleNotFound     = "Not Found"

	ContactIntro = `Have a project in mind, a question about something I've written, or just want
	to say hello? Send a message and I'll get back to you soon.`

	NotFoundMessage = "That page wandered off. Try the navigation above."

	PrivacySummary = `This site counts page views to see which pages are read. IP addresses are
	hashed with a per-process salt before they are stored, requests with Do Not Track
	enabled are not counted, and records older than twelve months are deleted. Contact
	form messages are written to the server log only.`
)
