package chart

// Open opens a file path or URL with the platform's default handler.
func Open(target string) error {
	return openBrowser(target)
}
