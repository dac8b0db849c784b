// Package content loads the site copy: profile, projects, posts,
// publications, experience and education.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSite []byte

var ErrNotFound = errors.New("content not found")

type Site struct {
	Profile      Profile       `yaml:"profile" json:"profile"`
	About        []string      `yaml:"about" json:"about"`
	Projects     []Project     `yaml:"projects" json:"projects"`
	Posts        []Post        `yaml:"posts" json:"posts"`
	Publications []Publication `yaml:"publications" json:"publications"`
	Experience   []Experience  `yaml:"experience" json:"experience"`
	Education    []Education   `yaml:"education" json:"education"`
}

type Profile struct {
	Name     string `yaml:"name" json:"name"`
	Title    string `yaml:"title" json:"title"`
	Tagline  string `yaml:"tagline" json:"tagline"`
	Email    string `yaml:"email" json:"email"`
	Location string `yaml:"location" json:"location"`
	Links    []Link `yaml:"links" json:"links"`
}

type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

type Project struct {
	Slug     string   `yaml:"slug" json:"slug"`
	Title    string   `yaml:"title" json:"title"`
	Summary  string   `yaml:"summary" json:"summary"`
	Tags     []string `yaml:"tags" json:"tags"`
	URL      string   `yaml:"url" json:"url,omitempty"`
	Repo     string   `yaml:"repo" json:"repo,omitempty"`
	Featured bool     `yaml:"featured" json:"featured"`
}

type Post struct {
	Slug    string        `yaml:"slug" json:"slug"`
	Title   string        `yaml:"title" json:"title"`
	Date    time.Time     `yaml:"date" json:"date"`
	Summary string        `yaml:"summary" json:"summary"`
	Tags    []string      `yaml:"tags" json:"tags"`
	Body    string        `yaml:"body" json:"-"`
	HTML    template.HTML `yaml:"-" json:"-"`
}

type Publication struct {
	Title    string   `yaml:"title" json:"title"`
	Authors  []string `yaml:"authors" json:"authors"`
	Venue    string   `yaml:"venue" json:"venue"`
	Year     int      `yaml:"year" json:"year"`
	URL      string   `yaml:"url" json:"url,omitempty"`
	Abstract string   `yaml:"abstract" json:"abstract,omitempty"`
}

type Experience struct {
	Role       string   `yaml:"role" json:"role"`
	Company    string   `yaml:"company" json:"company"`
	Start      string   `yaml:"start" json:"start"`
	End        string   `yaml:"end" json:"end"`
	Logo       string   `yaml:"logo" json:"logo,omitempty"`
	Highlights []string `yaml:"highlights" json:"highlights"`
}

type Education struct {
	Degree      string   `yaml:"degree" json:"degree"`
	Institution string   `yaml:"institution" json:"institution"`
	Start       string   `yaml:"start" json:"start"`
	End         string   `yaml:"end" json:"end"`
	Logo        string   `yaml:"logo" json:"logo,omitempty"`
	Highlights  []string `yaml:"highlights" json:"highlights"`
}

// Parse decodes a content document, renders post bodies and sorts posts
// newest first and publications by year descending.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	if err := site.check(); err != nil {
		return nil, err
	}
	for i := range site.Posts {
		html, err := Render(site.Posts[i].Body)
		if err != nil {
			return nil, fmt.Errorf("rendering post %q: %w", site.Posts[i].Slug, err)
		}
		site.Posts[i].HTML = html
	}
	sort.SliceStable(site.Posts, func(i, j int) bool { return site.Posts[i].Date.After(site.Posts[j].Date) })
	sort.SliceStable(site.Publications, func(i, j int) bool { return site.Publications[i].Year > site.Publications[j].Year })
	return &site, nil
}

// Load reads path, or the embedded default document when path is empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Parse(defaultSite)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return Parse(data)
}

func (s *Site) check() error {
	if s.Profile.Name == "" {
		return errors.New("content: profile.name is required")
	}
	seen := make(map[string]bool)
	for _, p := range s.Posts {
		if p.Slug == "" {
			return fmt.Errorf("content: post %q has no slug", p.Title)
		}
		if seen["post/"+p.Slug] {
			return fmt.Errorf("content: duplicate post slug %q", p.Slug)
		}
		seen["post/"+p.Slug] = true
	}
	for _, p := range s.Projects {
		if p.Slug == "" {
			return fmt.Errorf("content: project %q has no slug", p.Title)
		}
		if seen["project/"+p.Slug] {
			return fmt.Errorf("content: duplicate project slug %q", p.Slug)
		}
		seen["project/"+p.Slug] = true
	}
	return nil
}

// Post finds a post by slug.
func (s *Site) Post(slug string) (Post, error) {
	for _, p := range s.Posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, fmt.Errorf("%w: post %q", ErrNotFound, slug)
}

// Featured returns featured projects, or every project when none is flagged.
func (s *Site) Featured() []Project {
	var out []Project
	for _, p := range s.Projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return s.Projects
	}
	return out
}

// Recent returns at most n posts, newest first.
func (s *Site) Recent(n int) []Post {
	if n > len(s.Posts) {
		n = len(s.Posts)
	}
	return s.Posts[:n]
}
