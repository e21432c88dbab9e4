package views

// SiteInfo holds site-wide settings every view needs.
type SiteInfo struct {
	Name        string // shown in the header and JSON-LD
	URL         string // canonical base URL, no trailing slash
	Description string
	Version     string
	VersionDate string
}

// PageOptions carries per-render values that are not part of the model.
type PageOptions struct {
	Title      string // document title, from the SetTitle effect
	ReplaceURL string // address bar rewrite, from the ReplaceURL effect
	CSRFToken  string
}
