package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Target names the configuration file, section and optional subsection a model covers.
type Target struct {
	File       string `json:"file"`
	Section    string `json:"section"`
	Subsection string `json:"subsection,omitempty"`
}

// Validate reports missing file or section names.
func (t Target) Validate() error {
	if strings.TrimSpace(t.File) == "" {
		return errors.New("target file is required")
	}
	if strings.TrimSpace(t.Section) == "" {
		return errors.New("target section is required")
	}
	return nil
}

// Contains reports whether key falls inside the target's subsection filter.
func (t Target) Contains(key string) bool {
	return InSubsection(key, t.Subsection)
}

func (t Target) String() string {
	if t.Subsection == "" {
		return t.File + ":" + t.Section
	}
	return t.File + ":" + t.Section + "/" + t.Subsection
}

// Page identifies a display page. Pages are addressed by index on the
// presentation side, so conversion from an integer is checked.
type Page int

const (
	PageMain Page = iota
	PageSurround
)

// Pages lists every page in display order.
func Pages() []Page {
	return []Page{PageMain, PageSurround}
}

// PageFromIndex maps a presentation index onto a Page.
func PageFromIndex(index int) (Page, error) {
	pages := Pages()
	for _, p := range pages {
		if int(p) == index {
			return p, nil
		}
	}
	valid := make([]string, len(pages))
	for i, p := range pages {
		valid[i] = strconv.Itoa(int(p))
	}
	return 0, fmt.Errorf("page index %d is not one of %s", index, strings.Join(valid, ", "))
}

// Title returns the page's display title.
func (p Page) Title() string {
	switch p {
	case PageMain:
		return "Stream"
	case PageSurround:
		return "Surround"
	default:
		return fmt.Sprintf("Page(%d)", int(p))
	}
}

// Target returns the configuration target rendered on the page.
func (p Page) Target() (Target, error) {
	switch p {
	case PageMain:
		return Target{File: "pipewire-pulse.conf", Section: "stream.properties"}, nil
	case PageSurround:
		return Target{File: "pipewire-pulse.conf", Section: "stream.properties", Subsection: "channelmix"}, nil
	default:
		return Target{}, fmt.Errorf("page %d has no target", int(p))
	}
}
