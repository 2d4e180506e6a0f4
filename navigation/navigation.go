// Package navigation lists the site sections shown in the header.
package navigation

// Section is a navigation entry. Key is both the translation key in the
// Navigation namespace and the route segment; Path is relative to the
// locale root.
type Section struct {
	Key  string
	Path string
}

const (
	Home        = "home"
	Economy     = "economy"
	Politics    = "politics"
	Immigration = "immigration"
	Crime       = "crime"
	Comparator  = "comparator"
)

var sections = [...]Section{
	{Key: Home, Path: "/"},
	{Key: Economy, Path: "/" + Economy},
	{Key: Politics, Path: "/" + Politics},
	{Key: Immigration, Path: "/" + Immigration},
	{Key: Crime, Path: "/" + Crime},
	{Key: Comparator, Path: "/" + Comparator},
}

// Sections returns the header entries in display order.
func Sections() []Section {
	return append([]Section(nil), sections[:]...)
}

// Lookup finds a section by key. Home is not addressable as a section
// page, so Lookup reports false for it.
func Lookup(key string) (Section, bool) {
	if key == Home {
		return Section{}, false
	}
	for _, s := range sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// Active reports whether s is the section for a locale-relative path.
func (s Section) Active(rest string) bool {
	if s.Path == "/" {
		return rest == "/" || rest == ""
	}
	return rest == s.Path
}
